package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/hireflow/internal/api/handlers"
	"github.com/yoockh/hireflow/internal/api/middleware"
	"github.com/yoockh/hireflow/internal/metrics"
)

type Deps struct {
	HR         *handlers.HRHandler
	Form       *handlers.FormHandler
	Applicant  *handlers.ApplicantHandler
	Submission *handlers.SubmissionHandler
	Workflow   *handlers.WorkflowHandler
	Health     *handlers.HealthHandler

	Metrics        *metrics.Metrics
	Log            *logrus.Logger
	AllowedOrigins []string
}

// NewRouter builds the engine with the shared middleware chain and every
// route registered.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if d.Log != nil {
		r.Use(middleware.RequestLogger(d.Log))
	}
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
	}
	r.Use(cors.New(corsConfig(d.AllowedOrigins)))

	RegisterRoutes(r, d)
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.HeaderRequestID}
	cfg.ExposeHeaders = []string{middleware.HeaderRequestID}
	return cfg
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", d.Health.Ping)
	r.GET("/health", d.Health.Health)
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	hr := r.Group("/api/hr")
	{
		hr.POST("/signup", d.HR.SignUp)
		hr.POST("/login", d.HR.Login)

		hr.POST("/admin-form", d.Form.Create)
		hr.GET("/admin-forms", d.Form.List)
		hr.GET("/admin-form/:id", d.Form.Get)
		hr.PUT("/admin-form/:id", d.Form.Update)
		hr.DELETE("/admin-form/:id", d.Form.Delete)

		hr.GET("/applicants", d.Applicant.List)
		hr.GET("/analytics", d.Applicant.Analytics)

		hr.POST("/workflows/send-credentials", d.Workflow.SendCredentials)
		hr.POST("/workflows/sync-applicants", d.Workflow.SyncApplicants)
		hr.POST("/workflows/email-hired", d.Workflow.EmailHired)
	}

	user := r.Group("/api/user")
	{
		user.POST("/user-form", d.Submission.Submit)
		user.GET("/user-forms", d.Submission.List)
		user.POST("/onsite-interview", d.Workflow.UpdateOnsiteInterview)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "route not found"})
	})
}
