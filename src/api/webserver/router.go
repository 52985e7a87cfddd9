package webserver

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/talentpath/talentpath/src/api/config"
	"github.com/talentpath/talentpath/src/api/notify"
	"github.com/talentpath/talentpath/src/api/proposal"
)

func attachRoutes(r *gin.Engine, cfg config.Config, db *gorm.DB, rdb *redis.Client) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://app.talentpath.dev"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	engine := proposal.NewEngine(db, notify.NewRedisDispatcher(rdb))

	authH := NewAuth(db, []byte(cfg.JWTSecret))
	propH := NewProposals(engine, cfg.PageSize)
	courseH := NewCourses(engine)
	msgH := NewMessages(engine)

	limiter := NewRateLimiter(60, time.Minute)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", authH.Register)
		v1.POST("/auth/login", authH.Login)

		secured := v1.Group("")
		secured.Use(JWTMiddleware([]byte(cfg.JWTSecret)), RateLimitMiddleware(limiter))
		{
			secured.POST("/proposals", propH.Create)
			secured.GET("/proposals", propH.List)
			secured.GET("/proposals/:id", propH.Get)
			secured.PUT("/proposals/:id", propH.Update)

			secured.POST("/proposals/:id/courses/:courseId/start", courseH.Start)
			secured.POST("/proposals/:id/courses/:courseId/complete", courseH.Complete)
			secured.PUT("/proposals/:id/courses/:courseId/notes", courseH.Notes)

			secured.GET("/proposals/:id/messages", msgH.List)
			secured.POST("/proposals/:id/messages", msgH.Create)
		}
	}
}
