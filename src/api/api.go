package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/talentpath/talentpath/src/api/config"
	"github.com/talentpath/talentpath/src/api/data"
	"github.com/talentpath/talentpath/src/api/types"
	"github.com/talentpath/talentpath/src/api/webserver"
)

var allModels = []interface{}{
	&types.User{}, &types.Course{}, &types.Setting{},
	&types.Proposal{}, &types.ProposalCourse{},
	&types.ProposalMilestone{}, &types.ProposalMessage{},
}

func migrate(db *gorm.DB) {
	err := db.AutoMigrate(allModels...)

	if err == nil {
		return
	}

	log.Printf("auto-migrate failed (%v) - dropping & recreating schema", err)
	_ = db.Migrator().DropTable(
		"proposal_messages", "proposal_milestones", "proposal_courses",
		"proposals", "courses", "users", "settings",
	)
	if err := db.AutoMigrate(allModels...); err != nil {
		log.Fatalf("migrate after drop: %v", err)
	}
}

func seedCourses(db *gorm.DB) {
	seed := []types.Course{
		{ID: 1, Title: "Go Fundamentals", Level: types.LevelBeginner, Category: "backend", DurationHours: 20, IsActive: true},
		{ID: 2, Title: "Relational Databases", Level: types.LevelIntermediate, Category: "backend", DurationHours: 30, IsActive: true},
		{ID: 3, Title: "Distributed Systems", Level: types.LevelAdvanced, Category: "backend", DurationHours: 50, IsActive: true},
		{ID: 4, Title: "REST API Design", Level: types.LevelBeginner, Category: "backend", DurationHours: 15, IsActive: true},
	}
	for _, c := range seed {
		_ = db.FirstOrCreate(&types.Course{}, c).Error
	}
}

func seedSettings(db *gorm.DB) {
	_ = db.FirstOrCreate(&types.Setting{}, types.Setting{
		ID: 1, Name: "frontend_url", Value: "http://localhost:3000",
	}).Error
}

func main() {
	cfg := config.Load()

	db := data.MustMySQL(cfg.MySQLDSN)
	migrate(db)
	seedCourses(db)
	seedSettings(db)

	if err := data.LoadSettings(db); err != nil {
		log.Printf("failed to load settings: %v", err)
	}

	rdb := data.MustRedis(cfg.RedisURL)

	router := webserver.New(cfg, db, rdb)
	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("TalentPath API listening on %s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
