package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"resumeapi/internal/logger"
	"resumeapi/internal/model"
	"resumeapi/internal/repository"
	"resumeapi/internal/storage"
	"resumeapi/internal/validation"
)

var tracer = otel.Tracer("resumeapi/internal/service")

// CreateCandidateInput carries the candidate's text fields as submitted.
// Field order is the order in which validation failures are reported.
// The integer fields are pointers so an absent field is told apart from a literal 0.
type CreateCandidateInput struct {
	ContactEmail   string `form:"contact_email" validate:"resume_email"`
	ContactNumber  string `form:"contact_number" validate:"phone_digits"`
	DateOfBirth    string `form:"dob" validate:"past_date"`
	FullName       string `form:"full_name" validate:"required"`
	Experience     *int   `form:"experience" validate:"required,gte=0"`
	GraduationYear *int   `form:"graduation_year" validate:"required"`
	ContactAddress string `form:"contact_address" validate:"required"`
	Education      string `form:"education" validate:"required"`
	Skills         string `form:"skills"`
}

// ResumeUpload is the uploaded file. DeclaredSize comes from the client and is never
// used for enforcement; the service measures the stream itself.
type ResumeUpload struct {
	Filename     string
	ContentType  string
	DeclaredSize int64
	Reader       io.Reader
}

// ListFilter narrows List. Empty strings and nil pointers do not restrict anything.
type ListFilter struct {
	Skill          string
	Experience     *int
	GraduationYear *int
	Name           string
}

// CandidateService defines the use cases for handling candidates.
type CandidateService interface {
	// Create validates the input, stashes the resume and stores the record. It returns the new id.
	// Nothing is stored when validation fails; a stashed file is removed again if the record cannot be saved.
	Create(ctx context.Context, in CreateCandidateInput, upload ResumeUpload) (int64, error)

	// List returns the lightweight view of every candidate matching all filters, in insertion order.
	List(ctx context.Context, f ListFilter) ([]model.CandidateSummary, error)

	// Get returns the full record.
	Get(ctx context.Context, id int64) (*model.Candidate, error)

	// Delete removes the record. Failing to remove its resume file is logged, never returned.
	Delete(ctx context.Context, id int64) error

	// Count returns the number of stored candidates.
	Count(ctx context.Context) (int, error)
}

// Option customizes the candidate service.
type Option func(*candidateService)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *candidateService) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRules replaces the default file extension and size rules.
func WithRules(r validation.Rules) Option {
	return func(s *candidateService) { s.rules = r }
}

// WithMetrics records lifecycle counters.
func WithMetrics(m *Metrics) Option {
	return func(s *candidateService) { s.metrics = m }
}

// WithClock overrides time.Now for created_at and the dob check.
func WithClock(now func() time.Time) Option {
	return func(s *candidateService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRemoveFailureHook is called whenever a resume file cannot be removed.
func WithRemoveFailureHook(fn func(path string, err error)) Option {
	return func(s *candidateService) { s.onRemoveFailure = fn }
}

// candidateService is a concrete implementation of CandidateService.
type candidateService struct {
	store           storage.Storage
	repo            repository.CandidateRepository
	validate        *validator.Validate
	rules           validation.Rules
	log             *slog.Logger
	metrics         *Metrics
	now             func() time.Time
	onRemoveFailure func(path string, err error)
}

// NewCandidateService constructs a new CandidateService.
func NewCandidateService(store storage.Storage, repo repository.CandidateRepository, opts ...Option) CandidateService {
	s := &candidateService{
		store: store,
		repo:  repo,
		rules: validation.DefaultRules(),
		log:   logger.Discard(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.validate = validation.New(s.now)
	return s
}

func (s *candidateService) Create(ctx context.Context, in CreateCandidateInput, upload ResumeUpload) (id int64, err error) {
	ctx, span := tracer.Start(ctx, "CandidateService.Create", trace.WithSpanKind(trace.SpanKindInternal))
	defer func() { endSpan(span, err) }()

	if err := s.validateInput(in); err != nil {
		return 0, err
	}
	if strings.TrimSpace(upload.Filename) == "" {
		return 0, ErrMissingFilename
	}
	if !s.rules.FileExtension(upload.Filename) {
		return 0, fmt.Errorf("%w: allowed extensions are %s", ErrInvalidFileType, strings.Join(s.rules.AllowedExtensions, ", "))
	}
	if upload.Reader == nil {
		return 0, ErrReaderNil
	}

	r, size, err := measure(upload.Reader, s.rules.MaxFileSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	if !s.rules.FileSize(size) {
		return 0, fmt.Errorf("%w: max size is %d bytes", ErrFileTooLarge, s.rules.MaxFileSize)
	}
	if upload.DeclaredSize > 0 && upload.DeclaredSize != size {
		s.log.WarnContext(ctx, "declared_size_mismatch", "declared", upload.DeclaredSize, "measured", size)
	}

	if err := s.store.Ensure(ctx); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	obj, err := s.store.Put(ctx, upload.Filename, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: upload.ContentType,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	id, err = s.repo.NextID(ctx)
	if err != nil {
		s.rollback(ctx, obj.Key)
		return 0, fmt.Errorf("allocate id: %w", err)
	}
	c := &model.Candidate{
		ID:             id,
		FullName:       in.FullName,
		DateOfBirth:    in.DateOfBirth,
		ContactEmail:   in.ContactEmail,
		ContactNumber:  in.ContactNumber,
		ContactAddress: in.ContactAddress,
		Education:      in.Education,
		GraduationYear: *in.GraduationYear,
		Experience:     *in.Experience,
		Skills:         ParseSkills(in.Skills),
		ResumeFilePath: obj.Key,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		s.rollback(ctx, obj.Key)
		return 0, fmt.Errorf("save candidate: %w", err)
	}

	span.SetAttributes(attribute.Int64("candidate.id", id))
	s.metrics.incCreated()
	s.log.InfoContext(ctx, "candidate_created", "candidate_id", id, "resume_file_path", obj.Key, "size", size)
	return id, nil
}

// validateInput runs the struct rules and translates the first failure into a service error.
func (s *candidateService) validateInput(in CreateCandidateInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Tag() {
	case validation.TagEmail:
		return ErrInvalidEmail
	case validation.TagPhone:
		return ErrInvalidPhone
	case validation.TagPastDate:
		if _, dobErr := validation.ValidateDateOfBirthAt(in.DateOfBirth, s.now()); dobErr != nil {
			return fmt.Errorf("%w: %w", ErrInvalidDob, dobErr)
		}
		return ErrInvalidDob
	case "gte":
		return ErrInvalidExperience
	default:
		return fmt.Errorf("%w: %s", ErrMissingField, fe.Field())
	}
}

// rollback removes a stashed file whose record could not be saved.
func (s *candidateService) rollback(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		s.removeFailed(ctx, key, err)
	}
}

func (s *candidateService) removeFailed(ctx context.Context, key string, err error) {
	s.metrics.incRemoveFailure()
	s.log.WarnContext(ctx, "resume_remove_failed", "resume_file_path", key, "error", err.Error())
	if s.onRemoveFailure != nil {
		s.onRemoveFailure(key, err)
	}
}

func (s *candidateService) List(ctx context.Context, f ListFilter) ([]model.CandidateSummary, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.CandidateSummary, 0, len(all))
	for _, c := range all {
		if f.matches(c) {
			out = append(out, c.Summary())
		}
	}
	return out, nil
}

func (f ListFilter) matches(c model.Candidate) bool {
	if f.Skill != "" && !hasSkill(c.Skills, f.Skill) {
		return false
	}
	if f.Experience != nil && c.Experience != *f.Experience {
		return false
	}
	if f.GraduationYear != nil && c.GraduationYear != *f.GraduationYear {
		return false
	}
	if f.Name != "" && !strings.Contains(strings.ToLower(c.FullName), strings.ToLower(f.Name)) {
		return false
	}
	return true
}

func hasSkill(skills []string, want string) bool {
	for _, s := range skills {
		if strings.EqualFold(s, want) {
			return true
		}
	}
	return false
}

func (s *candidateService) Get(ctx context.Context, id int64) (*model.Candidate, error) {
	// ids start at 1, so nothing can be stored under zero or below
	if id <= 0 {
		return nil, ErrNotFound
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// Delete removes the resume file first (best effort), then the record.
func (s *candidateService) Delete(ctx context.Context, id int64) (err error) {
	ctx, span := tracer.Start(ctx, "CandidateService.Delete",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.Int64("candidate.id", id)),
	)
	defer func() { endSpan(span, err) }()

	if id <= 0 {
		return ErrNotFound
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if c.ResumeFilePath != "" {
		if err := s.store.Delete(ctx, c.ResumeFilePath); err != nil {
			s.removeFailed(ctx, c.ResumeFilePath, err)
		}
	}
	ok, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	s.metrics.incDeleted()
	s.log.InfoContext(ctx, "candidate_deleted", "candidate_id", id)
	return nil
}

func (s *candidateService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// ParseSkills splits a comma-separated list, trims each entry and drops empty ones.
// Order, case and duplicates are kept.
func ParseSkills(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// measure returns the number of bytes r will yield, reading at most limit+1 bytes when r cannot seek.
// The returned reader replays the stream from its original position.
func measure(r io.Reader, limit int64) (io.Reader, int64, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		cur, err := rs.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, 0, err
		}
		end, err := rs.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, 0, err
		}
		if _, err := rs.Seek(cur, io.SeekStart); err != nil {
			return nil, 0, err
		}
		return rs, end - cur, nil
	}
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, limit+1))
	if err != nil {
		return nil, 0, err
	}
	return &buf, n, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
