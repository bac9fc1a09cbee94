package datastructure

import "log"

// labelComponents label connected component setiap vertex (iterative dfs). node yang di prune dapat label -1.
func (g *Graph) labelComponents() {
	for i := range g.nodes {
		g.nodes[i].component = -1
	}

	stack := make([]int32, 0)
	count := int32(0)
	for i := range g.nodes {
		if g.nodes[i].pruned || g.nodes[i].component != -1 {
			continue
		}
		g.nodes[i].component = count
		stack = append(stack[:0], int32(i))
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, w := range g.nodes[v].adj {
				if g.nodes[w].component == -1 {
					g.nodes[w].component = count
					stack = append(stack, w)
				}
			}
		}
		count++
	}
	g.numComponents = int(count)
	log.Printf("Connected Components Count: %d", count)
}

func (g *Graph) NumComponents() int {
	return g.numComponents
}

// Component label connected component vertex, -1 kalau node bukan vertex atau graph belum frozen.
func (g *Graph) Component(id int64) int32 {
	if !g.frozen {
		return -1
	}
	return g.nodes[g.nodeIdx(id)].component
}

// SameComponent true kalau ada path antara dua vertex.
func (g *Graph) SameComponent(id1, id2 int64) bool {
	c := g.Component(id1)
	return c != -1 && c == g.Component(id2)
}
