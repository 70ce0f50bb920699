// Package optimizer 实现预算受限的上下文选择引擎。
//
// 给定自然语言任务描述和文档语料，引擎在严格的 Token
// 总预算内选出最相关的文档子集（或文档内的分段），
// 同时尊重文档之间的依赖关系。主要组件包括：
//
//   - TokenCounter：确定性的文本 Token 计数（tiktoken，
//     不可用时降级为字符估算）
//   - RelevanceScorer：关键词、依赖中心性、新近性、质量分
//     四因子加权评分
//   - Strategies：四种选择算法（priority、dependency_aware、
//     section_level、hybrid）
//   - Optimizer：评分与策略分发的协调入口
//
// # 基本用法
//
//	g := graph.New()
//	g.AddEdge("api.md", "auth.md")
//
//	opt := optimizer.New(
//	    optimizer.WithDependencyGraph(g),
//	)
//
//	result, err := opt.OptimizeContext(ctx, &optimizer.OptimizeRequest{
//	    TaskDescription: "implement token refresh for the auth API",
//	    FilesContent:    files,
//	    FilesMetadata:   metadata,
//	    TokenBudget:     8000,
//	    Strategy:        optimizer.StrategyHybrid,
//	})
//
// # 计算模型
//
// 引擎是纯内存计算：不做 I/O，不持久化任何实体，每次调用
// 的输入输出都是请求级值对象。同一个 Optimizer 实例可以
// 并发服务多个请求；唯一的约束是注入的依赖图在有请求进行
// 时不能被并发修改。没有内部超时，调用方直接丢弃结果即可
// 安全取消。
//
// # 预算契约
//
// 所有策略保证 TotalTokens 不超过预算，唯一例外是单个
// 必选文件自身超出整个预算时仍被强制纳入，并在结果元数据
// 中标记。预算为 0 时利用率为 0，不会除零。
package optimizer
