package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/architect/quiztracker/internal/common/database"
	"github.com/architect/quiztracker/internal/quiz/models"
	"gorm.io/gorm"
)

type seedConfig struct {
	DBType  string // "sqlite" or "postgres"
	DBPath  string // For SQLite
	ConnStr string // For PostgreSQL
}

var cfg seedConfig

func init() {
	flag.StringVar(&cfg.DBType, "db-type", "sqlite", "Database type: sqlite or postgres")
	flag.StringVar(&cfg.DBPath, "output", "./data/quiztracker.db", "SQLite database path")
	flag.StringVar(&cfg.ConnStr, "conn", "host=localhost port=5432 user=postgres password=postgres dbname=quiztracker sslmode=disable", "PostgreSQL DSN")
}

// topics mirrors the eight-topic curriculum the math_graduate achievement
// counts toward.
var topics = []string{
	"addition", "subtraction", "multiplication", "division",
	"fractions", "decimals", "geometry", "algebra",
}

var difficulties = []string{"easy", "medium", "hard"}

func main() {
	flag.Parse()

	dsn := cfg.ConnStr
	if cfg.DBType == "sqlite" {
		os.MkdirAll("./data", 0755)
		dsn = cfg.DBPath + "?mode=rwc&cache=shared&timeout=5000"
	}

	db, err := database.Open(cfg.DBType, dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("🌱 Starting data seeding...")

	count, err := seedPracticeQuestions(db)
	if err != nil {
		log.Fatalf("Failed to seed practice questions: %v", err)
	}
	log.Printf("✅ Created %d practice questions", count)

	log.Println("🎉 Data seeding complete!")
}

func seedPracticeQuestions(db *gorm.DB) (int, error) {
	count := 0

	for _, topic := range topics {
		for i, difficulty := range difficulties {
			for j := 0; j < 5; j++ {
				question, answer, wrong := buildQuestion(topic, i+1, j)

				options, err := json.Marshal([]string{answer, wrong[0], wrong[1], wrong[2]})
				if err != nil {
					return count, err
				}

				q := models.PracticeQuestion{
					TopicID:       topic,
					Difficulty:    difficulty,
					Question:      question,
					Options:       options,
					CorrectAnswer: answer,
					Explanation:   fmt.Sprintf("Work through the %s step by step.", topic),
				}

				// Skip questions that already exist
				result := db.Where("topic_id = ? AND question = ?", topic, question).
					FirstOrCreate(&q)
				if result.Error != nil {
					return count, result.Error
				}
				if result.RowsAffected > 0 {
					count++
				}
			}
		}
	}

	return count, nil
}

// buildQuestion generates a deterministic arithmetic-flavored question for a
// topic and difficulty level.
func buildQuestion(topic string, level, seq int) (string, string, [3]string) {
	a := level*10 + seq*3 + 2
	b := level*4 + seq + 1

	var question string
	var result int

	switch topic {
	case "addition":
		question = fmt.Sprintf("What is %d + %d?", a, b)
		result = a + b
	case "subtraction":
		question = fmt.Sprintf("What is %d - %d?", a, b)
		result = a - b
	case "multiplication":
		question = fmt.Sprintf("What is %d × %d?", a, b)
		result = a * b
	case "division":
		question = fmt.Sprintf("What is %d ÷ %d?", a*b, b)
		result = a
	case "fractions":
		question = fmt.Sprintf("What is %d/%d of %d?", 1, b, a*b)
		result = a
	case "decimals":
		question = fmt.Sprintf("What is %d.5 + %d.5?", a, b)
		result = a + b + 1
	case "geometry":
		question = fmt.Sprintf("What is the area of a %d by %d rectangle?", a, b)
		result = a * b
	default: // algebra
		question = fmt.Sprintf("If x + %d = %d, what is x?", b, a+b)
		result = a
	}

	answer := fmt.Sprintf("%d", result)
	wrong := [3]string{
		fmt.Sprintf("%d", result+1),
		fmt.Sprintf("%d", result-1),
		fmt.Sprintf("%d", result+b),
	}
	return question, answer, wrong
}
