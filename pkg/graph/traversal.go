package graph

import "sort"

// DetectCycles 检测依赖环。
//
// 使用带递归栈的 DFS，每发现一条回边记录一个代表性环路
// （返回的路径首尾为同一节点）。这不是环路的完整枚举：
// 同一个强连通分量可能只报告其中一个环，属于约定的部分结果。
// 不在 nodes 内的依赖会被忽略。
func DetectCycles(nodes []string, deps DependencyFn) [][]string {
	inSet := toSet(nodes)
	visited := make(map[string]bool, len(nodes))
	onStack := make(map[string]bool, len(nodes))
	stack := make([]string, 0, len(nodes))

	var cycles [][]string

	var visit func(node string)
	visit = func(node string) {
		visited[node] = true
		onStack[node] = true
		stack = append(stack, node)

		for _, dep := range deps(node) {
			if _, ok := inSet[dep]; !ok {
				continue
			}
			if onStack[dep] {
				// 回边：从栈中截取 dep 到当前节点的路径
				start := 0
				for i, n := range stack {
					if n == dep {
						start = i
						break
					}
				}
				cycle := make([]string, 0, len(stack)-start+1)
				cycle = append(cycle, stack[start:]...)
				cycle = append(cycle, dep)
				cycles = append(cycles, cycle)
				continue
			}
			if !visited[dep] {
				visit(dep)
			}
		}

		stack = stack[:len(stack)-1]
		onStack[node] = false
	}

	for _, node := range sortedCopy(nodes) {
		if !visited[node] {
			visit(node)
		}
	}

	return cycles
}

// TopologicalSort 对节点做拓扑排序（Kahn 算法）。
//
// 只考虑两个端点都在 nodes 内的边，未知依赖静默忽略。
// 存在环路时返回部分排序：无法解析的节点被省略，不报错。
// 排序结果保证依赖排在被依赖者之前，同层按名称升序。
func TopologicalSort(nodes []string, deps DependencyFn) []string {
	inSet := toSet(nodes)

	// 去重后的入度与反向邻接
	indegree := make(map[string]int, len(nodes))
	dependents := make(map[string][]string, len(nodes))
	for _, node := range nodes {
		if _, ok := indegree[node]; !ok {
			indegree[node] = 0
		}
	}
	for _, node := range nodes {
		for _, dep := range uniqueInSet(deps(node), inSet) {
			// 自环同样计入入度，带自环的节点永远无法释放，
			// 会和其它环路节点一起从结果中省略
			indegree[node]++
			dependents[dep] = append(dependents[dep], node)
		}
	}

	ready := make([]string, 0, len(nodes))
	for node, deg := range indegree {
		if deg == 0 {
			ready = append(ready, node)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(nodes))
	for len(ready) > 0 {
		node := ready[0]
		ready = ready[1:]
		order = append(order, node)

		released := make([]string, 0, len(dependents[node]))
		for _, dependent := range dependents[node] {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				released = append(released, dependent)
			}
		}
		if len(released) > 0 {
			ready = append(ready, released...)
			sort.Strings(ready)
		}
	}

	return order
}

// ReachableNodes 返回从 start 出发可达的节点集合（含 start）。
//
// 广度优先遍历，访问过的节点不会重复入队，
// 因此对环路和自环同样安全。filter 为 nil 时遍历全部边。
func ReachableNodes(start string, neighbors DependencyFn, filter EdgeFilter) map[string]struct{} {
	reachable := map[string]struct{}{start: {}}
	queue := []string{start}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		for _, next := range neighbors(node) {
			if filter != nil && !filter(node, next) {
				continue
			}
			if _, seen := reachable[next]; seen {
				continue
			}
			reachable[next] = struct{}{}
			queue = append(queue, next)
		}
	}

	return reachable
}

// TransitiveDependencies 返回节点的传递依赖闭包，不含节点自身。
func TransitiveDependencies(node string, deps DependencyFn) map[string]struct{} {
	closure := ReachableNodes(node, deps, nil)
	delete(closure, node)
	return closure
}

// PriorityOrder 按优先级排序节点。
//
// 稳定排序：优先级升序，同优先级按名称升序。输入切片不被修改。
func PriorityOrder(nodes []string, priority func(node string) int) []string {
	order := sortedCopy(nodes)
	sort.SliceStable(order, func(i, j int) bool {
		pi, pj := priority(order[i]), priority(order[j])
		if pi != pj {
			return pi < pj
		}
		return order[i] < order[j]
	})
	return order
}

// AdjacencyList 构建反向邻接表：节点 -> 依赖它的节点列表。
//
// nodes 中的每个节点都会出现在结果中，即使没有任何依赖者；
// 指向 nodes 之外的依赖被忽略。依赖者列表按名称升序。
func AdjacencyList(nodes []string, deps DependencyFn) map[string][]string {
	inSet := toSet(nodes)

	adjacency := make(map[string][]string, len(nodes))
	for node := range inSet {
		adjacency[node] = []string{}
	}

	for _, node := range sortedCopy(nodes) {
		for _, dep := range deps(node) {
			if _, ok := inSet[dep]; !ok {
				continue
			}
			adjacency[dep] = append(adjacency[dep], node)
		}
	}

	for node := range adjacency {
		sort.Strings(adjacency[node])
	}

	return adjacency
}

// toSet 将切片转换为集合。
func toSet(nodes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		set[n] = struct{}{}
	}
	return set
}

// sortedCopy 返回排序后的副本，保证遍历顺序确定。
func sortedCopy(nodes []string) []string {
	cp := make([]string, len(nodes))
	copy(cp, nodes)
	sort.Strings(cp)
	return cp
}

// uniqueInSet 返回 deps 中位于 set 内的去重列表，保持首次出现顺序。
func uniqueInSet(deps []string, set map[string]struct{}) []string {
	seen := make(map[string]struct{}, len(deps))
	out := make([]string, 0, len(deps))
	for _, d := range deps {
		if _, ok := set[d]; !ok {
			continue
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}
