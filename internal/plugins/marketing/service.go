package marketing

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/huabuyu/geoai/internal/apperror"
	"github.com/huabuyu/geoai/internal/plugins/auth"
	"github.com/huabuyu/geoai/internal/sanitize"
)

// InquiryService validates contact and demo requests and hands them to a
// sink. The default sink writes a structured log line.
type InquiryService interface {
	Contact(ctx context.Context, req ContactRequest, remoteIP string) (*Inquiry, error)
	ScheduleDemo(ctx context.Context, req DemoRequest, remoteIP string) (*Inquiry, error)
}

// Sink receives accepted inquiries.
type Sink func(ctx context.Context, in *Inquiry)

type inquiryService struct {
	sink Sink
}

// NewInquiryService creates an InquiryService. A nil sink logs each inquiry.
func NewInquiryService(sink Sink) InquiryService {
	if sink == nil {
		sink = LogSink
	}
	return &inquiryService{sink: sink}
}

// LogSink records an inquiry at Info level. The message body is not logged,
// only its length.
func LogSink(ctx context.Context, in *Inquiry) {
	slog.InfoContext(ctx, "inquiry received",
		slog.String("kind", in.Kind),
		slog.String("topic", in.Topic),
		slog.String("name", in.Name),
		slog.String("email", in.Email),
		slog.String("company", in.Company),
		slog.String("date", in.Date),
		slog.Int("message_length", len(in.Message)),
		slog.String("remote_ip", in.RemoteIP),
	)
}

func (s *inquiryService) Contact(ctx context.Context, req ContactRequest, remoteIP string) (*Inquiry, error) {
	in := &Inquiry{
		Kind:     "contact",
		Topic:    sanitize.Text(req.Topic),
		Name:     sanitize.Text(req.Name),
		Email:    sanitize.Email(req.Email),
		Company:  sanitize.Text(req.Company),
		Subject:  sanitize.Text(req.Subject),
		Message:  sanitize.Text(req.Message),
		RemoteIP: remoteIP,
	}
	if in.Topic == "" {
		in.Topic = TopicSales
	}

	if in.Name == "" || in.Email == "" || in.Subject == "" || in.Message == "" {
		return nil, apperror.NewValidation(MsgRequiredFields)
	}
	if !auth.ValidEmail(in.Email) {
		return nil, apperror.NewValidation(MsgInvalidEmail)
	}
	if !slices.Contains(Topics, in.Topic) {
		return nil, apperror.NewValidation(MsgInvalidTopic)
	}

	s.sink(ctx, in)
	return in, nil
}

func (s *inquiryService) ScheduleDemo(ctx context.Context, req DemoRequest, remoteIP string) (*Inquiry, error) {
	in := &Inquiry{
		Kind:     "demo",
		Name:     sanitize.Text(req.Name),
		Email:    sanitize.Email(req.Email),
		Company:  sanitize.Text(req.Company),
		Phone:    sanitize.Text(req.Phone),
		Date:     sanitize.Text(req.Date),
		Timezone: sanitize.Text(req.Timezone),
		Message:  sanitize.Text(req.Message),
		RemoteIP: remoteIP,
	}

	if in.Name == "" || in.Email == "" || in.Company == "" || in.Date == "" {
		return nil, apperror.NewValidation(MsgRequiredFields)
	}
	if !auth.ValidEmail(in.Email) {
		return nil, apperror.NewValidation(MsgInvalidEmail)
	}
	if _, err := time.Parse(time.DateOnly, in.Date); err != nil {
		return nil, apperror.NewValidation(MsgInvalidDate)
	}

	s.sink(ctx, in)
	return in, nil
}
