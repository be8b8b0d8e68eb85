package httpapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/aaronromeo/powerbuilder/internal/catalog"
	"github.com/aaronromeo/powerbuilder/internal/coach"
	"github.com/aaronromeo/powerbuilder/internal/llm"
)

const (
	msgEmptyLog  = "Please type something first!"
	msgSaved     = "✅ Saved! The app will remember this next time."
	fmtGenError  = "Error: %v"
	fmtSaveError = "Error saving to sheets: %v"
)

type coachRoutes struct {
	svc    *coach.Service
	cat    catalog.Catalog
	logger *slog.Logger
}

func registerCoach(app *fiber.App, svc *coach.Service, cat catalog.Catalog, logger *slog.Logger) {
	r := &coachRoutes{svc: svc, cat: cat, logger: logger}
	app.Get("/", r.index)
	app.Post("/generate", r.generate)
	app.Post("/save", r.save)
}

func (r *coachRoutes) form(c *fiber.Ctx) formState {
	return formState{
		Gym:     r.cat.Gym(c.FormValue("gym")),
		Workout: r.cat.Workout(c.FormValue("workout")),
		Notes:   c.FormValue("notes"),
		Session: c.FormValue("session"),
	}
}

func (r *coachRoutes) page(f formState) pageData {
	return pageData{
		Gyms:     options(r.cat.Gyms, f.Gym),
		Workouts: options(r.cat.Workouts, f.Workout),
		Notes:    f.Notes,
		Session:  f.Session,
	}
}

func (r *coachRoutes) index(c *fiber.Ctx) error {
	f := formState{Gym: r.cat.Gym(""), Workout: r.cat.Workout("")}
	return render(c, http.StatusOK, "index", r.page(f))
}

func (r *coachRoutes) generate(c *fiber.Ctx) error {
	f := r.form(c)
	data := r.page(f)

	plan, err := r.svc.GeneratePlan(c.UserContext(), llm.PlanRequest{
		Gym:     f.Gym,
		Workout: f.Workout,
		Notes:   f.Notes,
	})
	if err != nil {
		data.GenerateError = fmt.Sprintf(fmtGenError, err)
		return render(c, http.StatusBadGateway, "index", data)
	}

	htm, err := renderMarkdown(plan.Markdown)
	if err != nil {
		data.GenerateError = fmt.Sprintf(fmtGenError, err)
		return render(c, http.StatusInternalServerError, "index", data)
	}
	data.PlanID = plan.ID
	data.Plan = htm
	return render(c, http.StatusOK, "index", data)
}

func (r *coachRoutes) save(c *fiber.Ctx) error {
	f := r.form(c)
	data := r.page(f)

	_, err := r.svc.SaveLog(c.UserContext(), f.Gym, f.Workout, f.Session)
	switch {
	case errors.Is(err, coach.ErrEmptyLog):
		data.SaveError = msgEmptyLog
		return render(c, http.StatusBadRequest, "index", data)
	case err != nil:
		data.SaveError = fmt.Sprintf(fmtSaveError, err)
		return render(c, http.StatusBadGateway, "index", data)
	}
	data.SaveSuccess = msgSaved
	return render(c, http.StatusOK, "index", data)
}
