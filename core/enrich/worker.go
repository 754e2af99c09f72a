package enrich

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/Wenqiii/pkvgo/core/ai"
	"github.com/Wenqiii/pkvgo/core/errors"
	gormModel "github.com/Wenqiii/pkvgo/internal/model/gorm"
	"github.com/bytedance/sonic"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/panjf2000/ants/v2"
)

// 低于该长度的提取文本不做AI增强，直接标记完成
const minTextRunes = 10

// UpdateFunc 条目部分更新回调，由持久层注入
type UpdateFunc func(ctx context.Context, id string, fields map[string]interface{}) error

// Job 一次增强任务
type Job struct {
	ItemId        string
	Title         string
	ExtractedText string
}

// Options Worker配置
type Options struct {
	Workers        int           // 并发Worker数量
	SubtaskTimeout time.Duration // 单个AI子任务超时
	MaxKeyPoints   int           // 要点数量上限
}

// Worker 异步内容增强执行器
// 有界协程池消费任务，三个子任务并发执行、独立结算，终态一定落库
type Worker struct {
	svc     ai.ContentService
	update  UpdateFunc
	pool    *ants.Pool
	opts    Options
	inFly   sync.Map // itemId -> struct{}，同一条目的增强互斥
	stopped bool
	mu      sync.Mutex
}

// NewWorker 创建增强执行器
func NewWorker(svc ai.ContentService, update UpdateFunc, opts Options) (*Worker, error) {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.SubtaskTimeout <= 0 {
		opts.SubtaskTimeout = 2 * time.Minute
	}
	if opts.MaxKeyPoints <= 0 {
		opts.MaxKeyPoints = 5
	}

	pool, err := ants.NewPool(opts.Workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, errors.Newf(errors.ErrInternalError, "failed to create enrichment pool: %v", err)
	}

	return &Worker{
		svc:    svc,
		update: update,
		pool:   pool,
		opts:   opts,
	}, nil
}

// Stop 释放协程池
func (w *Worker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.stopped {
		w.stopped = true
		w.pool.Release()
	}
}

// Submit 提交增强任务，立即返回，不等待执行
// 同一条目已有任务在执行时拒绝，避免终态写入竞争
func (w *Worker) Submit(ctx context.Context, job Job) error {
	if _, loaded := w.inFly.LoadOrStore(job.ItemId, struct{}{}); loaded {
		return errors.Newf(errors.ErrEnrichInFlight, "enrichment already in flight for item %s", job.ItemId)
	}

	err := w.pool.Submit(func() {
		runCtx := context.Background()
		defer w.inFly.Delete(job.ItemId)
		// run 内部panic也必须落终态，条目不能停在 processing
		defer func() {
			if r := recover(); r != nil {
				g.Log().Errorf(runCtx, "条目 %s 增强任务panic: %v\n%s", job.ItemId, r, string(debug.Stack()))
				w.markFailed(runCtx, job.ItemId, fmt.Sprintf("enrichment panic: %v", r))
			}
		}()
		w.run(runCtx, job)
	})
	if err != nil {
		w.inFly.Delete(job.ItemId)
		g.Log().Errorf(ctx, "增强任务提交失败: ID=%s, 错误: %v", job.ItemId, err)
		// 队列满时直接落终态，条目不能停在 processing
		w.markFailed(ctx, job.ItemId, fmt.Sprintf("enrichment queue full: %v", err))
		return errors.Newf(errors.ErrEnrichQueueFull, "enrichment queue full for item %s", job.ItemId)
	}

	g.Log().Infof(ctx, "增强任务已提交: ID=%s, 文本长度=%d", job.ItemId, len(job.ExtractedText))
	return nil
}

// run 执行一次增强，结束时必定写入终态
func (w *Worker) run(ctx context.Context, job Job) {
	// 无可用文本不是失败：媒体文件本来就没有文本
	if len([]rune(job.ExtractedText)) < minTextRunes {
		g.Log().Infof(ctx, "条目 %s 无可用文本，跳过AI增强直接完成", job.ItemId)
		if err := w.finalize(ctx, job.ItemId, map[string]interface{}{
			"processing_status": gormModel.StatusCompleted,
			"processing_error":  "no text content available for enrichment",
		}); err != nil {
			g.Log().Errorf(ctx, "条目 %s 完成状态写入失败: %v", job.ItemId, err)
			w.markFailed(ctx, job.ItemId, fmt.Sprintf("failed to finalize item: %v", err))
		}
		return
	}

	summaryRes, keyPointsRes, analysisRes := w.runSubtasks(ctx, job)

	fields := map[string]interface{}{
		"processing_status": gormModel.StatusCompleted,
	}

	if summaryRes.Ok() {
		fields["summary"] = summaryRes.Value
	} else {
		g.Log().Warningf(ctx, "条目 %s 摘要子任务失败: %v", job.ItemId, summaryRes.Err)
	}

	if keyPointsRes.Ok() && len(keyPointsRes.Value) > 0 {
		if encoded, err := sonic.Marshal(keyPointsRes.Value); err == nil {
			fields["key_points"] = string(encoded)
		} else {
			g.Log().Warningf(ctx, "条目 %s 要点序列化失败: %v", job.ItemId, err)
		}
	} else if !keyPointsRes.Ok() {
		g.Log().Warningf(ctx, "条目 %s 要点子任务失败: %v", job.ItemId, keyPointsRes.Err)
	}

	if analysisRes.Ok() && analysisRes.Value != nil {
		if encoded, err := sonic.Marshal(analysisRes.Value); err == nil {
			fields["ai_analysis"] = string(encoded)
		} else {
			g.Log().Warningf(ctx, "条目 %s 分析结果序列化失败: %v", job.ItemId, err)
		}
	} else if !analysisRes.Ok() {
		g.Log().Warningf(ctx, "条目 %s 分析子任务失败: %v", job.ItemId, analysisRes.Err)
	}

	if err := w.finalize(ctx, job.ItemId, fields); err != nil {
		g.Log().Errorf(ctx, "条目 %s 增强结果写入失败: %v", job.ItemId, err)
		w.markFailed(ctx, job.ItemId, fmt.Sprintf("failed to persist enrichment result: %v", err))
		return
	}

	g.Log().Infof(ctx, "条目 %s 增强完成: summary=%v, keyPoints=%v, analysis=%v",
		job.ItemId, summaryRes.Ok(), keyPointsRes.Ok(), analysisRes.Ok())
}

// runSubtasks 并发执行三个子任务，全部等完再结算
func (w *Worker) runSubtasks(ctx context.Context, job Job) (Result[string], Result[[]string], Result[*ai.Analysis]) {
	var (
		summaryRes   Result[string]
		keyPointsRes Result[[]string]
		analysisRes  Result[*ai.Analysis]
		wg           sync.WaitGroup
	)

	wg.Add(3)

	// 子任务内的panic只折损该子任务，不能打穿进程
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				summaryRes.Err = errors.Newf(errors.ErrEnrichSubtask, "summary panic: %v", r)
			}
		}()
		subCtx, cancel := context.WithTimeout(ctx, w.opts.SubtaskTimeout)
		defer cancel()
		summaryRes.Value, summaryRes.Err = w.svc.Summarize(subCtx, job.ExtractedText)
	}()

	go func() {
		defer wg.Done()
		// 要点提取走本地启发式，不依赖AI服务
		defer func() {
			if r := recover(); r != nil {
				keyPointsRes.Err = errors.Newf(errors.ErrEnrichSubtask, "key point extraction panic: %v", r)
			}
		}()
		keyPointsRes.Value = ai.ExtractKeyPoints(job.ExtractedText, w.opts.MaxKeyPoints)
	}()

	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				analysisRes.Err = errors.Newf(errors.ErrEnrichSubtask, "analysis panic: %v", r)
			}
		}()
		subCtx, cancel := context.WithTimeout(ctx, w.opts.SubtaskTimeout)
		defer cancel()
		analysisRes.Value, analysisRes.Err = w.svc.Analyze(subCtx, job.ExtractedText)
	}()

	wg.Wait()
	return summaryRes, keyPointsRes, analysisRes
}

// finalize 写入终态
// 互斥守卫先于终态写入释放：终态已定的条目随时可以被重新提交，
// 否则"任务刚写完终态、守卫还没释放"的窗口里 regenerate 会把状态重置回
// processing 又提交失败，条目从此没有任务负责收尾
func (w *Worker) finalize(ctx context.Context, itemId string, fields map[string]interface{}) error {
	w.inFly.Delete(itemId)
	return w.update(ctx, itemId, fields)
}

// markFailed 尽力写入失败终态
func (w *Worker) markFailed(ctx context.Context, itemId string, message string) {
	err := w.finalize(ctx, itemId, map[string]interface{}{
		"processing_status": gormModel.StatusFailed,
		"processing_error":  message,
	})
	if err != nil {
		g.Log().Errorf(ctx, "条目 %s 失败状态写入失败，条目将停留在上一个状态: %v", itemId, err)
	}
}
