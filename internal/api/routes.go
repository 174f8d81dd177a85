package api

import (
	"net/http"

	"github.com/ronrevv/wolverinez-workout-planner/internal/domain"
	"github.com/ronrevv/wolverinez-workout-planner/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	userService service.UserService,
	planService service.PlanService,
	assignmentService service.AssignmentService,
	trackingService service.TrackingService,
	exerciseService service.ExerciseService,
	accessService service.AccessService,
	adminService service.AdminService,
) {
	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	planHandler := NewPlanHandler(planService)
	assignmentHandler := NewAssignmentHandler(assignmentService, userService)
	trackingHandler := NewTrackingHandler(trackingService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	accessHandler := NewAccessHandler(accessService)
	adminHandler := NewAdminHandler(adminService, accessService)

	router.Use(MetricsMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Anonymous BMI: computed and returned, never persisted.
		apiV1.POST("/bmi", trackingHandler.CalculateBMIAnonymous)
	}

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(jwtSecret), RoleResolverMiddleware(authService))
	{
		protected.GET("/me", authHandler.Me)

		protected.GET("/profile", userHandler.GetProfile)
		protected.PUT("/profile", userHandler.UpsertProfile)

		// --- Tracking ---
		trackingGroup := protected.Group("/tracking")
		{
			trackingGroup.POST("/bmi", trackingHandler.CalculateBMI)
			trackingGroup.GET("/bmi/history", trackingHandler.BMIHistory)
			trackingGroup.POST("/weight-logs", trackingHandler.LogWeight)
			trackingGroup.GET("/weight-logs", trackingHandler.ListWeightLogs)
			trackingGroup.POST("/workouts", trackingHandler.RecordSession)
			trackingGroup.GET("/workouts", trackingHandler.ListSessions)
			trackingGroup.POST("/attendance/check-in", trackingHandler.CheckIn)
			trackingGroup.POST("/attendance/:attendanceId/check-out", trackingHandler.CheckOut)
			trackingGroup.GET("/progress", trackingHandler.ProgressStats)
		}

		// --- Exercise Catalog ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("/muscle-groups", exerciseHandler.ListMuscleGroups)
			exerciseGroup.GET("/:muscleGroup", exerciseHandler.GetExercises)
		}

		// --- Workout Plans ---
		planGroup := protected.Group("/plans")
		{
			planGroup.POST("", planHandler.CreatePlan)
			planGroup.GET("/mine", planHandler.ListMyPlans)
			planGroup.GET("/:planId", planHandler.GetPlan)
			planGroup.PUT("/:planId", planHandler.UpdatePlan)
			planGroup.DELETE("/:planId", planHandler.DeletePlan)

			// The full plan listing feeds the assignment workflow.
			planGroup.GET("", RoleMiddleware(domain.RoleTrainer, domain.RoleAdmin), planHandler.ListPlans)
		}

		// --- Assignments ---
		assignmentGroup := protected.Group("/assignments")
		{
			// The assignee's own side.
			assignmentGroup.GET("/mine", assignmentHandler.ListMyAssignments)
			assignmentGroup.POST("/:assignmentId/complete", assignmentHandler.MarkCompleted)

			// The assigner's side: trainers and admins only.
			assignerOnly := RoleMiddleware(domain.RoleTrainer, domain.RoleAdmin)
			assignmentGroup.GET("/candidates", assignerOnly, assignmentHandler.ListCandidates)
			assignmentGroup.POST("", assignerOnly, assignmentHandler.Assign)
			assignmentGroup.GET("", assignerOnly, assignmentHandler.ListAssignments)
		}

		// --- Site Access (own) ---
		accessGroup := protected.Group("/access")
		{
			accessGroup.GET("", accessHandler.MyAccess)
			accessGroup.POST("/document", accessHandler.RequestDocumentUpload)
			accessGroup.GET("/document", accessHandler.MyDocumentURL)
		}

		// --- Admin ---
		adminGroup := protected.Group("/admin")
		adminGroup.Use(RoleMiddleware(domain.RoleAdmin))
		{
			adminGroup.GET("/members", adminHandler.ListMembers)
			adminGroup.PUT("/users/:userId/role", adminHandler.SetRole)
			adminGroup.PUT("/users/:userId/subscription", adminHandler.UpsertSubscription)
			adminGroup.POST("/users/:userId/access/grant", adminHandler.GrantAccess)
			adminGroup.POST("/users/:userId/access/revoke", adminHandler.RevokeAccess)
			adminGroup.GET("/users/:userId/document", adminHandler.UserDocumentURL)
		}
	}
}
