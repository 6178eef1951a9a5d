package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"resumeapi/internal/service"
)

const resumeField = "resume"

type rootResponse struct {
	Message         string `json:"message"`
	TotalCandidates int    `json:"total_candidates"`
	Docs            string `json:"docs"`
	Health          string `json:"health"`
}

type createdResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// Root describes the API and how many candidates it holds.
func Root(svc service.CandidateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, err := svc.Count(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(rootResponse{
			Message:         "Welcome to Mini Resume Management API",
			TotalCandidates: n,
			Docs:            "/docs",
			Health:          "/health",
		})
	}
}

// CreateCandidate accepts a multipart form with the candidate fields and a "resume" file.
func CreateCandidate(svc service.CandidateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FORM", "multipart/form-data body is required")
		}

		var in service.CreateCandidateInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FORM", "experience and graduation_year must be integers")
		}

		// A missing file is reported by the service after the text fields are checked.
		var upload service.ResumeUpload
		if fh, err := c.FormFile(resumeField); err == nil {
			f, err := fh.Open()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			defer f.Close()

			ct := fh.Header.Get("Content-Type")
			if ct == "" {
				ct = "application/octet-stream"
			}
			upload = service.ResumeUpload{
				Filename:     fh.Filename,
				ContentType:  ct,
				DeclaredSize: fh.Size,
				Reader:       f,
			}
		}

		id, err := svc.Create(c.UserContext(), in, upload)
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Location("/candidates/" + strconv.FormatInt(id, 10))
		return c.Status(fiber.StatusCreated).JSON(createdResponse{
			Message: "Candidate created successfully",
			ID:      id,
		})
	}
}

// ListCandidates returns the lightweight view, optionally filtered by skill, experience, graduation_year and name.
func ListCandidates(svc service.CandidateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := service.ListFilter{
			Skill: c.Query("skill"),
			Name:  c.Query("name"),
		}
		var ok bool
		if f.Experience, ok = intQuery(c, "experience"); !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_EXPERIENCE", "experience must be an integer")
		}
		if f.GraduationYear, ok = intQuery(c, "graduation_year"); !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_GRADUATION_YEAR", "graduation_year must be an integer")
		}

		res, err := svc.List(c.UserContext(), f)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetCandidate returns the full record.
func GetCandidate(svc service.CandidateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		cand, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(cand)
	}
}

// DeleteCandidate removes the record and, best effort, its resume.
func DeleteCandidate(svc service.CandidateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// pathID only rejects ids that are not integers; zero and negatives are left
// to the service, which reports them as not found.
func pathID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// intQuery returns nil when the parameter is absent and false when it is not an integer.
func intQuery(c *fiber.Ctx, key string) (*int, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &v, true
}
