package common

import (
	"context"
	"time"

	"github.com/mfell/workspace-agent/internal/agent"
	"github.com/mfell/workspace-agent/internal/instrumentation"
	"github.com/mfell/workspace-agent/internal/server"
	"github.com/mfell/workspace-agent/internal/tools/args"
)

// Instrumented wraps a tool handler with metrics and audit logging. Each
// invocation is timed and recorded both as a tool invocation and, when
// serviceName is set, as a Google API operation. The wrapper is a no-op when
// the server context carries neither a metrics recorder nor an audit logger.
//
// Usage:
//
//	reg.MustRegister(desc, common.Instrumented(desc.Name, "gmail", "list", sc, handler))
func Instrumented(
	toolName, serviceName, operation string,
	sc *server.Context,
	handler agent.ToolFunc,
) agent.ToolFunc {
	return func(ctx context.Context, a map[string]any) (string, error) {
		metrics := sc.Metrics()
		auditLogger := sc.AuditLogger()

		if metrics == nil && auditLogger == nil {
			return handler(ctx, a)
		}

		start := time.Now()
		invocation := instrumentation.NewToolInvocation(toolName).
			WithSpanContext(ctx).
			WithAccount(args.Account(a))
		if serviceName != "" {
			invocation.WithService(serviceName, operation)
		}

		out, err := handler(ctx, a)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		if err != nil {
			status = instrumentation.StatusError
			invocation.CompleteWithError(err)
		} else {
			invocation.CompleteSuccess()
		}

		if metrics != nil {
			metrics.RecordToolInvocation(ctx, toolName, status, duration)
			if serviceName != "" {
				metrics.RecordGoogleAPIOperation(ctx, serviceName, operation, status, duration)
			}
		}

		if auditLogger != nil {
			auditLogger.LogToolInvocation(invocation)
		}

		return out, err
	}
}
