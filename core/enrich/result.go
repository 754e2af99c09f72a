package enrich

// Result 单个增强子任务的结算结果：要么有值要么有错误
// 三个子任务各自独立结算，互不拖累
type Result[T any] struct {
	Value T
	Err   error
}

// Ok 判断子任务是否成功
func (r Result[T]) Ok() bool {
	return r.Err == nil
}
