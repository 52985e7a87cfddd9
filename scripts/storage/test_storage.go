package main

import (
	"log"
	"os"

	"github.com/talentpath/talentpath/src/api/data"
	"github.com/talentpath/talentpath/src/api/types"
)

func main() {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "talentpath:talentpath@tcp(localhost:3306)/talentpath?parseTime=true"
	}
	db := data.MustMySQL(dsn)

	var courses int64
	if err := db.Model(&types.Course{}).Where("is_active = ?", true).Count(&courses).Error; err != nil {
		log.Fatalf("count courses: %v", err)
	}
	log.Printf("active courses: %d", courses)
	if courses == 0 {
		log.Fatal("course catalog is empty - did the API seed run?")
	}

	var users, proposals int64
	db.Model(&types.User{}).Count(&users)
	db.Model(&types.Proposal{}).Count(&proposals)
	log.Printf("users: %d", users)
	log.Printf("proposals: %d", proposals)

	var byStatus []struct {
		Status string
		Count  int64
	}
	db.Model(&types.Proposal{}).Select("status, count(*) as count").Group("status").Scan(&byStatus)
	for _, row := range byStatus {
		log.Printf("  %s: %d", row.Status, row.Count)
	}
}
