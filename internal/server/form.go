package server

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/growthcast/growthcast/internal/engagement"
	"github.com/growthcast/growthcast/internal/forecast"
	"github.com/growthcast/growthcast/internal/predictor"
	"github.com/growthcast/growthcast/internal/style"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"count": style.FormatCount,
		"rate":  engagement.Format,
		"barPercent": func(value, max int64) int {
			return style.BarWidth(value, max, 100)
		},
	}).ParseFS(templateFS, "templates/*.html")
}

// pageData feeds templates/index.html
type pageData struct {
	Input      predictor.Input
	Rate       float64
	ShowRate   bool
	Result     *predictor.Result
	Errors     []predictor.FieldIssue
	MaxSummary int64
	Horizons   []int
}

func newPageData(in predictor.Input) *pageData {
	horizons := make([]int, 0, forecast.MaxHorizon-forecast.MinHorizon+1)
	for h := forecast.MinHorizon; h <= forecast.MaxHorizon; h++ {
		horizons = append(horizons, h)
	}

	return &pageData{
		Input:    in,
		Rate:     in.EngagementRate(),
		ShowRate: in.Followers > 0 && in.PostsInWindow > 0,
		Horizons: horizons,
	}
}

// showForm renders the empty form
func (s *Server) showForm(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, newPageData(predictor.DefaultInput()))
}

// submitForm handles the predict button
func (s *Server) submitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	in, issues := inputFromForm(r)
	data := newPageData(in)

	if len(issues) > 0 {
		s.metrics.ObserveValidationFailure("form")
		data.Errors = issues
		s.renderPage(w, r, http.StatusBadRequest, data)
		return
	}

	result, err := s.runPrediction(r, "form", in)
	if err != nil {
		var ve *predictor.ValidationError
		if errors.As(err, &ve) {
			data.Errors = ve.Issues
			s.renderPage(w, r, http.StatusBadRequest, data)
			return
		}
		http.Error(w, "prediction failed", http.StatusInternalServerError)
		return
	}

	data.Result = result
	for _, item := range result.Summary {
		if item.Value > data.MaxSummary {
			data.MaxSummary = item.Value
		}
	}
	s.renderPage(w, r, http.StatusOK, data)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, data *pageData) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "index.html", data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Template render failed")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// inputFromForm reads the form fields. Unparseable numbers are reported as
// issues; missing fields keep their default.
func inputFromForm(r *http.Request) (predictor.Input, []predictor.FieldIssue) {
	in := predictor.DefaultInput()
	var issues []predictor.FieldIssue

	fields := []struct {
		name string
		dst  *int64
	}{
		{"avg_likes", &in.AvgLikes},
		{"new_post_avg_like", &in.NewPostAvgLikes},
		{"posts", &in.Posts},
		{"total_engagements", &in.TotalEngagements},
		{"followers_60", &in.Followers},
		{"posts_60", &in.PostsInWindow},
	}

	for _, f := range fields {
		raw := r.PostForm.Get(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			issues = append(issues, predictor.FieldIssue{
				Field:   f.name,
				Tag:     "integer",
				Value:   raw,
				Message: f.name + " must be a whole number",
			})
			continue
		}
		*f.dst = v
	}

	if raw := r.PostForm.Get("years"); raw != "" {
		years, err := strconv.Atoi(raw)
		if err != nil {
			issues = append(issues, predictor.FieldIssue{
				Field:   "years",
				Tag:     "integer",
				Value:   raw,
				Message: "years must be a whole number",
			})
		} else {
			in.Years = years
		}
	}

	return in, issues
}
