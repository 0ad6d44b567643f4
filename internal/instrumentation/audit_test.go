package instrumentation

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestToolInvocation_Lifecycle(t *testing.T) {
	ti := NewToolInvocation("gmail_list_messages").
		WithUser("jane@example.com").
		WithAccount("work").
		WithService(ServiceGmail, OperationList)

	if ti.Tool != "gmail_list_messages" {
		t.Errorf("expected tool gmail_list_messages, got %s", ti.Tool)
	}
	if ti.StartTime.IsZero() {
		t.Error("expected start time to be set")
	}

	time.Sleep(time.Millisecond)
	ti.CompleteSuccess()

	if !ti.Success {
		t.Error("expected invocation to be marked successful")
	}
	if ti.Duration <= 0 {
		t.Error("expected positive duration")
	}
	if ti.Status() != StatusSuccess {
		t.Errorf("expected status success, got %s", ti.Status())
	}
}

func TestToolInvocation_CompleteWithError(t *testing.T) {
	ti := NewToolInvocation("calendar_create_event")
	ti.CompleteWithError(errors.New("quota exceeded"))

	if ti.Success {
		t.Error("expected invocation to be marked failed")
	}
	if ti.Error != "quota exceeded" {
		t.Errorf("expected error message quota exceeded, got %s", ti.Error)
	}
	if ti.Status() != StatusError {
		t.Errorf("expected status error, got %s", ti.Status())
	}
}

func TestToolInvocation_UserDomain(t *testing.T) {
	ti := NewToolInvocation("test").WithUser("jane@example.com")
	if ti.UserDomain() != "example.com" {
		t.Errorf("expected domain example.com, got %s", ti.UserDomain())
	}

	ti = NewToolInvocation("test")
	if ti.UserDomain() != "unknown" {
		t.Errorf("expected domain unknown for empty email, got %s", ti.UserDomain())
	}
}

func TestToolInvocation_WithSpanContext_NoSpan(t *testing.T) {
	ti := NewToolInvocation("test").WithSpanContext(context.Background())

	// No active span, trace context stays empty
	if ti.TraceID != "" || ti.SpanID != "" {
		t.Errorf("expected empty trace context, got trace=%s span=%s", ti.TraceID, ti.SpanID)
	}
}

func TestToolInvocation_LogAttrs(t *testing.T) {
	ti := NewToolInvocation("gmail_list_messages").
		WithUser("jane@example.com").
		WithAccount("work").
		WithService(ServiceGmail, OperationList)
	ti.CompleteSuccess()

	attrs := ti.LogAttrs()

	keys := make(map[string]slog.Attr)
	for _, a := range attrs {
		keys[a.Key] = a
	}

	if keys["user_domain"].Value.String() != "example.com" {
		t.Errorf("expected user_domain example.com, got %s", keys["user_domain"].Value.String())
	}
	if _, ok := keys["user"]; ok {
		t.Error("LogAttrs must not include the full email")
	}
	if keys["account"].Value.String() != "work" {
		t.Errorf("expected account work, got %s", keys["account"].Value.String())
	}
	if keys["service"].Value.String() != ServiceGmail {
		t.Errorf("expected service gmail, got %s", keys["service"].Value.String())
	}
}

func TestToolInvocation_LogAttrs_DefaultAccountOmitted(t *testing.T) {
	ti := NewToolInvocation("test").WithAccount("default")
	ti.CompleteSuccess()

	for _, a := range ti.LogAttrs() {
		if a.Key == "account" {
			t.Error("expected default account to be omitted from log attrs")
		}
	}
}

func TestToolInvocation_LogAuditAttrs(t *testing.T) {
	ti := NewToolInvocation("gmail_send_email").
		WithUser("jane@example.com").
		WithAccount("default")
	ti.CompleteWithError(errors.New("denied"))

	keys := make(map[string]slog.Attr)
	for _, a := range ti.LogAuditAttrs() {
		keys[a.Key] = a
	}

	if keys["user"].Value.String() != "jane@example.com" {
		t.Errorf("expected full email in audit attrs, got %s", keys["user"].Value.String())
	}
	// Audit attrs always include the account, even "default"
	if keys["account"].Value.String() != "default" {
		t.Errorf("expected account default, got %s", keys["account"].Value.String())
	}
	if keys["error"].Value.String() != "denied" {
		t.Errorf("expected error denied, got %s", keys["error"].Value.String())
	}
}

func TestAuditLogger_LogToolInvocation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	al := NewAuditLogger(logger)

	ti := NewToolInvocation("gmail_list_messages").WithUser("jane@example.com")
	ti.CompleteSuccess()
	al.LogToolInvocation(ti)

	out := buf.String()
	if !strings.Contains(out, "tool_executed") {
		t.Errorf("expected tool_executed message, got %s", out)
	}
	if strings.Contains(out, "jane@example.com") {
		t.Errorf("expected email to be anonymized by default, got %s", out)
	}
	if !strings.Contains(out, "example.com") {
		t.Errorf("expected domain in output, got %s", out)
	}
}

func TestAuditLogger_LogToolInvocation_Failure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	al := NewAuditLogger(logger)

	ti := NewToolInvocation("drive_delete_file")
	ti.CompleteWithError(errors.New("not found"))
	al.LogToolInvocation(ti)

	out := buf.String()
	if !strings.Contains(out, "tool_failed") {
		t.Errorf("expected tool_failed message, got %s", out)
	}
	if !strings.Contains(out, "not found") {
		t.Errorf("expected error in output, got %s", out)
	}
}

func TestAuditLogger_IncludePII(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	al := NewAuditLoggerWithConfig(logger, AuditLoggingConfig{
		Enabled:    true,
		IncludePII: true,
	})

	ti := NewToolInvocation("gmail_list_messages").WithUser("jane@example.com")
	ti.CompleteSuccess()
	al.LogToolInvocation(ti)

	if !strings.Contains(buf.String(), "jane@example.com") {
		t.Errorf("expected full email with PII enabled, got %s", buf.String())
	}
}

func TestAuditLogger_Disabled(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	al := NewAuditLoggerWithConfig(logger, AuditLoggingConfig{Enabled: false})

	ti := NewToolInvocation("gmail_list_messages")
	ti.CompleteSuccess()
	al.LogToolInvocation(ti)
	al.LogToolAudit(ti)

	if buf.Len() != 0 {
		t.Errorf("expected no output when disabled, got %s", buf.String())
	}
}

func TestAuditLogger_NilLogger(t *testing.T) {
	// Falls back to slog.Default, must not panic
	al := NewAuditLogger(nil)
	ti := NewToolInvocation("test")
	ti.CompleteSuccess()
	al.LogToolInvocation(ti)
}
