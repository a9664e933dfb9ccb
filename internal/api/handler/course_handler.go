package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eduskill/eduskill-api/internal/core/domain"
	"github.com/eduskill/eduskill-api/internal/core/ports"
)

// CourseHandler serves the course catalogue and the exam flow.
type CourseHandler struct {
	courseService ports.CourseService
}

func NewCourseHandler(courseService ports.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// List handles GET /api/v1/courses with optional category and level filters.
//
// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        category  query     string  false  "Filter by category"
// @Param        level     query     string  false  "Filter by level"
// @Success      200       {array}   courseResponse
// @Router       /api/v1/courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	courses, err := h.courseService.List(c.Request().Context(), ports.ListCoursesFilter{
		Category: c.QueryParam("category"),
		Level:    c.QueryParam("level"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCourseResponses(courses))
}

// MyCourses lists the courses owned by the calling instructor.
//
// @Summary      List own courses
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  courseResponse
// @Router       /api/v1/courses/my-courses [get]
func (h *CourseHandler) MyCourses(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	courses, err := h.courseService.MyCourses(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCourseResponses(courses))
}

// Get returns one course by id.
//
// @Summary      Get a course
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Course id"
// @Success      200  {object}  courseResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/courses/{id} [get]
func (h *CourseHandler) Get(c echo.Context) error {
	course, err := h.courseService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCourseResponse(course))
}

// Create publishes a new course owned by the caller.
//
// @Summary      Create a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCourseRequest  true  "Course details"
// @Success      201   {object}  courseResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/courses [post]
func (h *CourseHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course, err := h.courseService.Create(c.Request().Context(), req.toInput(user.ID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCourseResponse(course))
}

// Update applies a partial edit, scoped to the owner (admins bypass).
//
// @Summary      Update a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Course id"
// @Param        body  body      updateCourseRequest  true  "Fields to change"
// @Success      200   {object}  courseResponse
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/courses/{id} [patch]
func (h *CourseHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course, err := h.courseService.Update(c.Request().Context(), c.Param("id"), user.ID, user.Role, req.toUpdate())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCourseResponse(course))
}

// Delete removes a course, scoped to the owner (admins bypass).
//
// @Summary      Delete a course
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Course id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/courses/{id} [delete]
func (h *CourseHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	if err := h.courseService.Delete(c.Request().Context(), c.Param("id"), user.ID, user.Role); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddModule appends a lesson to a course the caller owns.
//
// @Summary      Add a module to a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Course id"
// @Param        body  body      addModuleRequest  true  "Module details"
// @Success      200   {object}  courseResponse
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/courses/{id}/modules [post]
func (h *CourseHandler) AddModule(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req addModuleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course, err := h.courseService.AddModule(c.Request().Context(), c.Param("id"), user.ID, domain.Module{
		Title:    req.Title,
		VideoURL: req.VideoURL,
		Duration: req.Duration,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCourseResponse(course))
}

// SetExam replaces the course exam. Each question's correct-answer index must
// point at one of its own options.
//
// @Summary      Set the course exam
// @Tags         exams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Course id"
// @Param        body  body      setExamRequest  true  "Exam questions"
// @Success      200   {object}  courseResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/courses/{id}/exam [post]
func (h *CourseHandler) SetExam(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req setExamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	questions := make([]domain.ExamQuestion, 0, len(req.Questions))
	for i, q := range req.Questions {
		if q.CorrectAnswer >= len(q.Options) {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("question %d: correct_answer out of range", i))
		}
		questions = append(questions, domain.ExamQuestion{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		})
	}

	course, err := h.courseService.SetExam(c.Request().Context(), c.Param("id"), user.ID, questions)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCourseResponse(course))
}

// GetExam returns the course exam. Correct-answer indices are present only
// for the course owner or an admin.
//
// @Summary      Get the course exam
// @Tags         exams
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Course id"
// @Success      200  {object}  examResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/courses/{id}/exam [get]
func (h *CourseHandler) GetExam(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	view, err := h.courseService.GetExam(c.Request().Context(), c.Param("id"), user.ID, user.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toExamResponse(view))
}

// SubmitExam grades the caller's answers. A first pass mints a certificate;
// repeat passes return the original certificate unchanged.
//
// @Summary      Submit exam answers
// @Tags         exams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Course id"
// @Param        body  body      submitExamRequest  true  "Answer indices, positional"
// @Success      200   {object}  examResultResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/courses/{id}/exam/submit [post]
func (h *CourseHandler) SubmitExam(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req submitExamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.courseService.SubmitExam(c.Request().Context(), c.Param("id"), user.ID, req.Answers)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, examResultResponse{
		Passed:         result.Passed,
		Score:          result.Score,
		TotalQuestions: result.TotalQuestions,
		CorrectAnswers: result.CorrectAnswers,
		Certificate:    result.Certificate,
	})
}
