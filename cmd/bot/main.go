package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/DynamicLiz/CardioBud/internal/config"
	"github.com/DynamicLiz/CardioBud/internal/gemini"
	"github.com/DynamicLiz/CardioBud/internal/service"
	"github.com/DynamicLiz/CardioBud/internal/store"
	"github.com/DynamicLiz/CardioBud/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var st store.Store
	if cfg.DBPath != "" {
		st, err = store.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("Using sqlite store at %s", cfg.DBPath)
	} else {
		st = store.NewMemoryStore()
		log.Println("Using in-memory store (state is lost on restart)")
	}
	defer st.Close()

	questions := service.LoadQuestions(cfg.QuestionsFile)
	engine := service.NewQuizEngine(questions, st, cfg.ShuffleQuiz)

	var gen telegram.Generator
	if cfg.GeminiAPIKey != "" {
		client := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiTimeout)
		gen = client.Generate
		log.Println("Delegated replies enabled via Gemini")
	}

	bot, err := telegram.NewBot(cfg.BotToken, st, engine, gen)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("🤖 CardioBud is starting...")
	bot.Start(ctx)
}
