package pkv

import (
	"github.com/Wenqiii/pkvgo/api/pkv"
	"github.com/Wenqiii/pkvgo/internal/logic/ingest"
	"github.com/Wenqiii/pkvgo/internal/logic/retrieval"
)

// ControllerV1 知识条目接口实现
type ControllerV1 struct {
	ingest    *ingest.Coordinator
	retrieval *retrieval.Service
}

func NewV1(coordinator *ingest.Coordinator, service *retrieval.Service) pkv.IPkvV1 {
	return &ControllerV1{
		ingest:    coordinator,
		retrieval: service,
	}
}
