// Package graph 提供文档依赖图的构建与遍历能力。
//
// 本包的遍历算法均为纯函数，通过 DependencyFn 回调读取边，
// 因此既可以基于内存中的 Graph 运行，也可以基于外部存储
// （如 Neo4j）提供的依赖查询运行。
package graph

import "sort"

// DependencyFn 返回指定节点直接依赖的节点列表。
type DependencyFn func(node string) []string

// EdgeFilter 判断是否沿 from -> to 这条边继续遍历。
type EdgeFilter func(from, to string) bool

// Graph 文档依赖关系的有向图。
//
// 边的方向为 from 依赖 to。允许重复边、自环和环路；
// 遍历算法必须对这些情况保持安全。
//
// Graph 的读操作可以并发执行，但写操作（AddNode/AddEdge）
// 需要调用方自行串行化，本包不提供内部锁。
type Graph struct {
	nodes map[string]struct{}
	edges map[string][]string
}

// New 创建空的依赖图。
func New() *Graph {
	return &Graph{
		nodes: make(map[string]struct{}),
		edges: make(map[string][]string),
	}
}

// AddNode 添加节点。重复添加是无害的。
func (g *Graph) AddNode(node string) {
	g.nodes[node] = struct{}{}
}

// AddEdge 添加一条依赖边：from 依赖 to。
// 两个端点会被自动注册为节点。
func (g *Graph) AddEdge(from, to string) {
	g.nodes[from] = struct{}{}
	g.nodes[to] = struct{}{}
	g.edges[from] = append(g.edges[from], to)
}

// Dependencies 返回节点的直接依赖列表。
// 未知节点返回 nil。该方法满足 DependencyFn 的签名。
func (g *Graph) Dependencies(node string) []string {
	return g.edges[node]
}

// Nodes 返回按名称排序的全部节点。
func (g *Graph) Nodes() []string {
	nodes := make([]string, 0, len(g.nodes))
	for n := range g.nodes {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)
	return nodes
}

// HasNode 判断节点是否存在。
func (g *Graph) HasNode(node string) bool {
	_, ok := g.nodes[node]
	return ok
}

// EdgeCount 返回边的总数（重复边分别计数）。
func (g *Graph) EdgeCount() int {
	count := 0
	for _, targets := range g.edges {
		count += len(targets)
	}
	return count
}

// 编译时接口检查
var _ DependencyFn = (*Graph)(nil).Dependencies
