package httputil

import "github.com/gin-gonic/gin"

// TraceIDKey はgin.ContextにTraceIDを格納するキー。
const TraceIDKey = "trace_id"

// WriteError はProblemDetailをGinレスポンスとして書き込む。
// instanceとtrace_idが未設定の場合はリクエストから補う。
func WriteError(c *gin.Context, problem *ProblemDetail) {
	annotate(c, problem)
	c.Header("Content-Type", ContentType)
	c.JSON(problem.Status, problem)
}

// AbortWithError はWriteErrorと同様に書き込み、以降のハンドラーを実行しない。
func AbortWithError(c *gin.Context, problem *ProblemDetail) {
	annotate(c, problem)
	c.Header("Content-Type", ContentType)
	c.AbortWithStatusJSON(problem.Status, problem)
}

func annotate(c *gin.Context, problem *ProblemDetail) {
	if problem.Instance == "" && c.Request != nil && c.Request.URL != nil {
		problem.Instance = c.Request.URL.Path
	}
	if problem.TraceID == "" {
		problem.TraceID = c.GetString(TraceIDKey)
	}
}
