package imagegen

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/GitDDAN/padel-palms-proposal/internal/storage"
	"github.com/GitDDAN/padel-palms-proposal/pkg/apperror"
	"github.com/GitDDAN/padel-palms-proposal/pkg/logger"
	"github.com/GitDDAN/padel-palms-proposal/pkg/tracing"
)

// Size is the requested output resolution.
type Size string

const (
	Size1K Size = "1K"
	Size2K Size = "2K"
	Size4K Size = "4K"
)

const maxEventName = 120

// Request describes the event post to generate.
type Request struct {
	EventName  string `json:"eventName"`
	SubSubject string `json:"subSubject,omitempty"`
	Date       string `json:"date,omitempty"`
	Time       string `json:"time,omitempty"`
	EventType  string `json:"eventType"`
	PhotoStyle string `json:"photoStyle"`
	Size       Size   `json:"size,omitempty"`
}

// Response carries the branded PNG as a data URL, plus its storage URL when
// uploads are enabled.
type Response struct {
	Image    string `json:"image"`
	URL      string `json:"url,omitempty"`
	Filename string `json:"filename"`
}

// Uploader stores finished images.
type Uploader interface {
	Enabled() bool
	Upload(ctx context.Context, key string, data []byte, opts storage.UploadOptions) (*storage.UploadResult, error)
}

// Recorder observes image generations.
type Recorder interface {
	RecordImage(outcome string, took time.Duration)
}

// Service generates branded event posts.
type Service struct {
	gen      Generator
	uploader Uploader
	recorder Recorder
	timeout  time.Duration
	log      *slog.Logger
	now      func() time.Time
}

// NewService creates the image service. A nil gen makes every request fail
// with ErrUnavailable.
func NewService(gen Generator, uploader Uploader, recorder Recorder, timeout time.Duration, log *slog.Logger) *Service {
	return &Service{
		gen:      gen,
		uploader: uploader,
		recorder: recorder,
		timeout:  timeout,
		log:      log.With(logger.Scope("imagegen")),
		now:      time.Now,
	}
}

// Available reports whether images can be generated at all.
func (s *Service) Available() bool {
	return s.gen != nil
}

// Validate normalizes req in place and reports invalid fields.
func Validate(req *Request) error {
	problems := map[string]string{}

	req.EventName = strings.TrimSpace(req.EventName)
	switch {
	case req.EventName == "":
		problems["eventName"] = "Event name is required"
	case len([]rune(req.EventName)) > maxEventName:
		problems["eventName"] = fmt.Sprintf("Event name must be at most %d characters", maxEventName)
	}

	switch req.Size {
	case "":
		req.Size = Size1K
	case Size1K, Size2K, Size4K:
	default:
		problems["size"] = "Size must be 1K, 2K or 4K"
	}

	if req.Date != "" {
		if _, err := time.Parse(time.DateOnly, req.Date); err != nil {
			problems["date"] = "Date must be YYYY-MM-DD"
		}
	}

	if len(problems) > 0 {
		return apperror.NewValidation(problems)
	}
	return nil
}

// Generate builds the prompt, calls the model, draws the overlay and
// optionally uploads the result.
func (s *Service) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := Validate(&req); err != nil {
		return nil, err
	}
	if s.gen == nil {
		s.record("unavailable", 0)
		return nil, apperror.ErrUnavailable
	}

	ctx, span := tracing.Start(ctx, "imagegen.generate",
		attribute.String("imagegen.event_type", req.EventType),
		attribute.String("imagegen.size", string(req.Size)),
	)
	defer span.End()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := s.now()
	raw, err := s.gen.Generate(ctx, Brand(BuildPrompt(req.EventType, req.PhotoStyle)), req.Size)
	if err != nil {
		tracing.Fail(span, err)
		s.record("error", s.now().Sub(start))
		s.log.Error("image generation failed", logger.Error(err))
		return nil, apperror.NewUpstream("Image generation failed, please try again", err)
	}

	branded, err := Overlay(raw, Details{
		Name:       req.EventName,
		SubSubject: req.SubSubject,
		Date:       req.Date,
		Time:       req.Time,
	})
	if err != nil {
		tracing.Fail(span, err)
		s.record("error", s.now().Sub(start))
		return nil, apperror.NewUpstream("The generated image could not be branded", err)
	}
	s.record("success", s.now().Sub(start))

	resp := &Response{
		Image:    "data:image/png;base64," + base64.StdEncoding.EncodeToString(branded),
		Filename: DownloadName(req.EventName),
	}

	if s.uploader != nil && s.uploader.Enabled() {
		res, err := s.uploader.Upload(ctx, storage.GenerateImageKey(s.now(), resp.Filename), branded, storage.UploadOptions{
			ContentType:        "image/png",
			ContentDisposition: fmt.Sprintf(`attachment; filename="%s"`, resp.Filename),
			Metadata:           map[string]string{"event-type": req.EventType, "photo-style": req.PhotoStyle},
		})
		if err != nil {
			// The image is still returned inline.
			s.log.Warn("image upload failed", logger.Error(err))
		} else {
			resp.URL = res.URL
		}
	}

	return resp, nil
}

func (s *Service) record(outcome string, took time.Duration) {
	if s.recorder != nil {
		s.recorder.RecordImage(outcome, took)
	}
}
