package cmd

import (
	"context"

	"github.com/Wenqiii/pkvgo/internal/controller/pkv"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/net/ghttp"
	"github.com/gogf/gf/v2/os/gcmd"
)

var (
	Main = gcmd.Command{
		Name:  "main",
		Usage: "main",
		Brief: "start http server",
		Func: func(ctx context.Context, parser *gcmd.Parser) (err error) {
			s := g.Server()

			s.Group("/api", func(group *ghttp.RouterGroup) {
				group.Middleware(MiddlewareMultipartMaxMemory, MiddlewareHandlerResponse, ghttp.MiddlewareCORS)
				group.Bind(
					pkv.NewV1(ingestCoordinator, retrievalService),
				)
			})
			s.Run()
			return nil
		},
	}
)
