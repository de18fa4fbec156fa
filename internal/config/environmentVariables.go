package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//serverTimeouts
	ReadTimeout            = 15 * time.Second
	WriteTimeout           = 90 * time.Second //has to outlive the llm call
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//uploads
	MaxUploadSize    = 32 << 20 //32mb
	StagingDirectory = "temporary_data"

	//llm
	LLMProviderOpenAI   = "openai"
	LLMProviderGemini   = "gemini"
	LLMTimeout          = 60 * time.Second
	OpenAIModelName     = "gpt-3.5-turbo"
	OpenAIBaseURL       = "https://api.openai.com/v1/"
	GeminiModelName     = "gemini-2.5-flash-lite-preview-09-2025"
	ModelTemperature    = 0.0
	ModelContext        = "You are a helpful assistant that extracts RFQ information from documents."
	PDFPageExtractLimit = 10 * time.Second
	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second
	LLMDialTimeout      = 30 * time.Second

	//delivery
	SMTPPort         = 587
	ReviewerAddress  = "procurement@yourcompany.com"
	ReviewSubject    = "New RFQ for Review"
	ReviewBody       = "Please review the attached RFQ document."
	SMTPSendTimeout  = 30 * time.Second
	RFQDraftFilename = "rfq_draft.txt"

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisRunStore = 0

	//redis timeouts
	RedisRunStoreTTL = 24 * time.Hour
)
