package errors

// ErrCode 业务错误码类型
type ErrCode int

const (
	// 通用错误 1000-1999
	ErrInvalidParameter ErrCode = 1001 // 参数错误
	ErrUnauthorized     ErrCode = 1002 // 未授权
	ErrInternalError    ErrCode = 1003 // 内部错误
	ErrNotFound         ErrCode = 1004 // 资源未找到
	ErrAlreadyExists    ErrCode = 1005 // 资源已存在
	ErrOperationFailed  ErrCode = 1006 // 操作失败

	// 压缩相关 2000-2999
	ErrCompressionFailed   ErrCode = 2001 // 压缩失败
	ErrDecompressionFailed ErrCode = 2002 // 解压失败
	ErrUnknownCompression  ErrCode = 2003 // 未知压缩类型标签
	ErrTextExtractFailed   ErrCode = 2004 // 文本提取失败

	// 对象存储相关 3000-3999
	ErrStorageInit       ErrCode = 3001 // 存储初始化失败
	ErrFileUploadFailed  ErrCode = 3002 // 文件上传失败
	ErrFileReadFailed    ErrCode = 3003 // 文件读取失败
	ErrFileDeleteFailed  ErrCode = 3004 // 文件删除失败
	ErrFileSizeExceeded  ErrCode = 3005 // 文件大小超限
	ErrFileAlreadyExists ErrCode = 3006 // 文件已存在

	// 知识条目相关 4000-4999
	ErrItemNotFound   ErrCode = 4001 // 知识条目未找到
	ErrDatabaseQuery  ErrCode = 4002 // 数据库查询失败
	ErrDatabaseInsert ErrCode = 4003 // 数据库插入失败
	ErrDatabaseUpdate ErrCode = 4004 // 数据库更新失败
	ErrDatabaseDelete ErrCode = 4005 // 数据库删除失败
	ErrDatabaseInit   ErrCode = 4006 // 数据库初始化失败

	// 内容增强相关 5000-5999
	ErrEnrichQueueFull    ErrCode = 5001 // 增强任务队列已满
	ErrEnrichInFlight     ErrCode = 5002 // 条目增强任务已在执行
	ErrEnrichSubtask      ErrCode = 5003 // 增强子任务失败
	ErrEnrichNotAvailable ErrCode = 5004 // 增强服务未初始化

	// AI模型相关 6000-6999
	ErrModelNotConfigured ErrCode = 6001 // 模型未配置
	ErrLLMCallFailed      ErrCode = 6002 // LLM调用失败
	ErrLLMBadResponse     ErrCode = 6003 // LLM响应无法解析
)

// HTTPStatusCode 返回错误码对应的HTTP状态码
func (e ErrCode) HTTPStatusCode() int {
	switch {
	case e >= 1001 && e <= 1999:
		// 通用错误
		switch e {
		case ErrInvalidParameter:
			return 400
		case ErrUnauthorized:
			return 401
		case ErrNotFound:
			return 404
		case ErrAlreadyExists:
			return 409
		default:
			return 500
		}
	case e >= 3000 && e <= 3999:
		// 存储相关错误
		switch e {
		case ErrFileAlreadyExists:
			return 409
		case ErrFileSizeExceeded:
			return 413
		default:
			return 500
		}
	case e >= 4000 && e <= 4999:
		// 知识条目相关错误
		if e == ErrItemNotFound {
			return 404
		}
		return 500
	case e >= 5000 && e <= 5999:
		// 增强相关错误
		switch e {
		case ErrEnrichInFlight:
			return 409
		case ErrEnrichQueueFull:
			return 429
		default:
			return 500
		}
	default:
		return 500
	}
}
