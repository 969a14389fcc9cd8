package graph

// Select adds n to the selection set. Selecting a selected node does nothing.
func (g *Graph) Select(n *Node) {
	if n.selected {
		return
	}
	n.SetSelected(true)
	g.selected = append(g.selected, n)
	selectionChanges.WithLabelValues("select").Inc()

	g.UpdateDistances()
}

// Deselect removes n from the selection set. Deselecting an unselected node
// does nothing.
func (g *Graph) Deselect(n *Node) {
	if !n.selected {
		return
	}
	n.SetSelected(false)
	for i, s := range g.selected {
		if s == n {
			g.selected = append(g.selected[:i], g.selected[i+1:]...)
			break
		}
	}
	selectionChanges.WithLabelValues("deselect").Inc()

	g.UpdateDistances()
}

// ClearSelect empties the selection set.
func (g *Graph) ClearSelect() {
	for _, n := range g.selected {
		n.SetSelected(false)
	}
	g.selected = nil
	selectionChanges.WithLabelValues("clear").Inc()

	g.UpdateDistances()
}

// GetSelected returns the selected node when exactly one is selected, nil
// otherwise.
func (g *Graph) GetSelected() *Node {
	if len(g.selected) == 1 {
		return g.selected[0]
	}
	return nil
}

// SelectedNodes returns the selection set in selection order.
func (g *Graph) SelectedNodes() []*Node {
	res := make([]*Node, len(g.selected))
	copy(res, g.selected)
	return res
}

// Neighbours returns the nodes linked to n by a relation in either direction.
func (g *Graph) Neighbours(n *Node) []*Node {
	return g.adjacency()[n]
}

// UpdateDistances recomputes every node's hop count to the nearest selected
// node with a multi-source breadth-first search over relations taken as
// undirected links. With an empty selection every distance becomes -1.
// Nodes no selected node can reach keep their previous distance.
func (g *Graph) UpdateDistances() {
	distanceUpdates.Inc()

	if len(g.selected) == 0 {
		for _, n := range g.order {
			n.distanceToSelected = -1
		}
		return
	}

	for _, n := range g.order {
		n.distanceUpdated = false
	}

	adj := g.adjacency()
	queue := make([]*Node, 0, len(g.order))
	for _, s := range g.selected {
		s.distanceToSelected = 0
		s.distanceUpdated = true
		queue = append(queue, s)
	}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, m := range adj[n] {
			if m.distanceUpdated {
				continue
			}
			m.distanceToSelected = n.distanceToSelected + 1
			m.distanceUpdated = true
			queue = append(queue, m)
		}
	}

	for _, n := range g.order {
		if n.distanceUpdated {
			g.logger.Debug("distance to selection", "id", n.ID, "distance", n.distanceToSelected)
		}
	}
}

func (g *Graph) adjacency() map[*Node][]*Node {
	adj := make(map[*Node][]*Node, len(g.order))
	for _, n := range g.order {
		for _, rel := range n.relations {
			if rel.IsSelf() {
				continue
			}
			adj[n] = append(adj[n], rel.To)
			adj[rel.To] = append(adj[rel.To], n)
		}
	}
	return adj
}
