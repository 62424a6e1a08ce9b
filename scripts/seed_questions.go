//go:build ignore

// Seeds the question bank from a yaml file.
//
//	go run scripts/seed_questions.go -config configs/config.yaml -file scripts/questions.yaml
package main

import (
	"flag"
	"log"
	"os"
	"satbank_backend/internal/config"
	"satbank_backend/internal/model"
	"satbank_backend/pkg/database"

	"gopkg.in/yaml.v3"
)

type seedQuestion struct {
	Text          string   `yaml:"text"`
	AnswerA       string   `yaml:"answerA"`
	AnswerB       string   `yaml:"answerB"`
	AnswerC       string   `yaml:"answerC"`
	AnswerD       string   `yaml:"answerD"`
	CorrectAnswer string   `yaml:"correctAnswer"`
	Explanation   string   `yaml:"explanation"`
	Type          string   `yaml:"type"`
	Tags          []string `yaml:"tags"`
	Difficulty    string   `yaml:"difficulty"`
}

type seedFile struct {
	Questions []seedQuestion `yaml:"questions"`
}

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	filePath := flag.String("file", "scripts/questions.yaml", "题目数据文件")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	data, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("Failed to read seed file: %v", err)
	}

	var seeds seedFile
	if err := yaml.Unmarshal(data, &seeds); err != nil {
		log.Fatalf("Failed to parse seed file: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	inserted := 0
	for _, seed := range seeds.Questions {
		questionType := model.QuestionType(seed.Type)
		if questionType != model.FreeResponse {
			questionType = model.MultipleChoice
		}

		question := &model.Question{
			Text:          seed.Text,
			AnswerA:       seed.AnswerA,
			AnswerB:       seed.AnswerB,
			AnswerC:       seed.AnswerC,
			AnswerD:       seed.AnswerD,
			CorrectAnswer: seed.CorrectAnswer,
			Explanation:   seed.Explanation,
			Type:          questionType,
			Tags:          seed.Tags,
			Difficulty:    seed.Difficulty,
		}
		if err := db.Create(question).Error; err != nil {
			log.Printf("Skipping question %q: %v", seed.Text, err)
			continue
		}
		inserted++
	}

	log.Printf("Seeded %d of %d questions", inserted, len(seeds.Questions))
}
