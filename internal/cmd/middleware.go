package cmd

import (
	"mime"
	"net/http"
	"strings"

	"github.com/Wenqiii/pkvgo/core/errors"
	"github.com/gogf/gf/v2/errors/gcode"
	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/net/ghttp"
)

const (
	contentTypeEventStream  = "text/event-stream"
	contentTypeOctetStream  = "application/octet-stream"
	contentTypeMixedReplace = "multipart/x-mixed-replace"
)

// 文件上传大小限制: 100MB
const maxUploadFormSize = 100 << 20

var (
	// streamContentType is the content types for stream response.
	streamContentType = []string{contentTypeEventStream, contentTypeOctetStream, contentTypeMixedReplace}
)

// MiddlewareMultipartMaxMemory 限制上传表单的内存占用
func MiddlewareMultipartMaxMemory(r *ghttp.Request) {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		r.Middleware.Next()
		return
	}

	if strings.HasPrefix(r.URL.Path, "/api/v1/items/upload") {
		if err := r.ParseMultipartForm(maxUploadFormSize); err != nil {
			r.Response.WriteStatus(http.StatusRequestEntityTooLarge)
			r.Response.WriteJson(ghttp.DefaultHandlerResponse{
				Code:    gcode.CodeInvalidParameter.Code(),
				Message: "File size exceeds the upload limit (100MB)",
				Data:    nil,
			})
			return
		}
	}

	r.Middleware.Next()
}

// MiddlewareHandlerResponse is the default middleware handling handler response object and its error.
func MiddlewareHandlerResponse(r *ghttp.Request) {
	r.Middleware.Next()

	// There's custom buffer content, it then exits current handler.
	if r.Response.BufferLength() > 0 || r.Response.Writer.BytesWritten() > 0 {
		return
	}

	// It does not output common response content if it is stream response.
	mediaType, _, _ := mime.ParseMediaType(r.Response.Header().Get("Content-Type"))
	for _, ct := range streamContentType {
		if mediaType == ct {
			return
		}
	}

	var (
		msg  string
		err  = r.GetError()
		res  = r.GetHandlerResponse()
		code = gerror.Code(err)
	)
	if err != nil {
		// 业务错误带HTTP状态码和业务码
		if appErr := errors.GetAppError(err); appErr != nil {
			r.Response.WriteStatus(appErr.Code.HTTPStatusCode())
			r.Response.WriteJson(ghttp.DefaultHandlerResponse{
				Code:    int(appErr.Code),
				Message: appErr.Message,
				Data:    nil,
			})
			return
		}
		if code == gcode.CodeNil {
			code = gcode.CodeInternalError
		}
		msg = err.Error()
	} else {
		if r.Response.Status > 0 && r.Response.Status != http.StatusOK {
			switch r.Response.Status {
			case http.StatusNotFound:
				code = gcode.CodeNotFound
			case http.StatusForbidden:
				code = gcode.CodeNotAuthorized
			default:
				code = gcode.CodeUnknown
			}
			// It creates an error as it can be retrieved by other middlewares.
			err = gerror.NewCode(code, msg)
			r.SetError(err)
		} else {
			code = gcode.CodeOK
		}
		msg = code.Message()
	}
	r.Response.WriteJson(ghttp.DefaultHandlerResponse{
		Code:    code.Code(),
		Message: msg,
		Data:    res,
	})
}
