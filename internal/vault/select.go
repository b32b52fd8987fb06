package vault

import (
	"sort"

	"github.com/harrison/vaultcopy/internal/models"
)

// Select computes the inclusion set: a breadth-first traversal from all
// seed nodes, following outgoing edges, with an explicit visited set so
// cycles terminate and every node is processed at most once. The result
// is the sorted list of vault-relative paths to copy.
//
// Exclusion gates seed status only: a node reached through references
// is included regardless of its own tags.
func Select(graph *models.VaultGraph) []string {
	visited := make(map[string]bool)
	queue := graph.Seeds()

	for _, seed := range queue {
		visited[seed] = true
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, target := range graph.Targets(current) {
			if visited[target] {
				continue
			}
			visited[target] = true
			queue = append(queue, target)
		}
	}

	included := make([]string, 0, len(visited))
	for path := range visited {
		included = append(included, path)
	}
	sort.Strings(included)
	return included
}
