package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"

	"github.com/sashabaranov/go-openai"

	"github.com/wyllersu/ai-fleet-mate/config"
	"github.com/wyllersu/ai-fleet-mate/models"
	"github.com/wyllersu/ai-fleet-mate/repositories"
)

var (
	ErrMissingAPIKey       = errors.New("AI gateway API key is not configured")
	ErrRateLimited         = errors.New("AI gateway rate limit exceeded")
	ErrInsufficientCredits = errors.New("AI gateway credits exhausted")
)

// kmUpdateRe recognizes the one slash-style command the assistant
// executes itself: "atualizar km <placa-ou-número> <nova-km>".
var kmUpdateRe = regexp.MustCompile(`(?i)atualizar km\s+(\S+)\s+(\d+)`)

type ChatService struct {
	cfg             *config.Config
	client          *openai.Client
	vehicleRepo     *repositories.VehicleRepository
	maintenanceRepo *repositories.MaintenanceRepository
}

func NewChatService(cfg *config.Config, vehicleRepo *repositories.VehicleRepository, maintenanceRepo *repositories.MaintenanceRepository) *ChatService {
	clientConfig := openai.DefaultConfig(cfg.AIGatewayKey)
	clientConfig.BaseURL = cfg.AIGatewayURL

	return &ChatService{
		cfg:             cfg,
		client:          openai.NewClientWithConfig(clientConfig),
		vehicleRepo:     vehicleRepo,
		maintenanceRepo: maintenanceRepo,
	}
}

// Chat handles one conversational turn: it loads the full fleet snapshot,
// executes a recognized mileage command if present, and forwards the
// snapshot-embedding system prompt plus the user message to the gateway.
// The boolean reports whether a mileage command actually committed.
func (s *ChatService) Chat(ctx context.Context, message string) (string, bool, error) {
	if s.cfg.AIGatewayKey == "" {
		return "", false, ErrMissingAPIKey
	}

	vehicles, err := s.vehicleRepo.List("")
	if err != nil {
		return "", false, err
	}

	maintenances, err := s.maintenanceRepo.List("")
	if err != nil {
		return "", false, err
	}

	commandResponse := ""
	if key, newKm, ok := ParseKmUpdateCommand(message); ok {
		vehicle, err := s.vehicleRepo.FindByPlateOrNumber(key)
		if err == nil {
			if err := s.vehicleRepo.UpdateKm(vehicle.ID, newKm); err == nil {
				commandResponse = fmt.Sprintf(
					"✅ Quilometragem do veículo %s (%s) atualizada para %d km com sucesso!",
					vehicle.VehicleNumber, vehicle.LicensePlate, newKm,
				)
				// Keep the snapshot the model sees consistent with the
				// update that just committed.
				for i := range vehicles {
					if vehicles[i].ID == vehicle.ID {
						vehicles[i].KmCurrent = newKm
					}
				}
			}
		}
	}

	kmUpdated := commandResponse != ""

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.cfg.AIModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: BuildSystemPrompt(vehicles, maintenances, commandResponse)},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
	})
	if err != nil {
		return "", kmUpdated, mapGatewayError(err)
	}

	if len(resp.Choices) == 0 {
		return "", kmUpdated, fmt.Errorf("AI gateway returned no choices")
	}

	return resp.Choices[0].Message.Content, kmUpdated, nil
}

// ParseKmUpdateCommand matches the mileage update command and returns the
// plate-or-number key and the new mileage.
func ParseKmUpdateCommand(message string) (key string, km int, ok bool) {
	match := kmUpdateRe.FindStringSubmatch(message)
	if match == nil {
		return "", 0, false
	}

	km, err := strconv.Atoi(match[2])
	if err != nil {
		return "", 0, false
	}

	return match[1], km, true
}

// BuildSystemPrompt embeds the fleet snapshot as structured context for
// the assistant, plus the confirmation of an already-executed command.
func BuildSystemPrompt(vehicles []models.Vehicle, maintenances []models.Maintenance, commandResponse string) string {
	snapshot, _ := json.MarshalIndent(map[string]interface{}{
		"vehicles":     vehicles,
		"maintenances": maintenances,
	}, "", "  ")

	commandLine := ""
	if commandResponse != "" {
		commandLine = "- IMPORTANTE: Já executei o comando e obtive este resultado: " + commandResponse + "\n"
	}

	return `Você é um assistente de IA especializado em gestão de frotas. Você tem acesso completo aos dados da frota e pode responder perguntas sobre veículos, manutenções, custos e análises.

DADOS DA FROTA:
` + string(snapshot) + `

INSTRUÇÕES:
- Responda em português brasileiro
- Seja conciso e objetivo
- Use emojis para tornar as respostas mais visuais (🚗 para veículos, 🔧 para manutenções, 💰 para custos, 📊 para análises)
- Para consultas de status, forneça um resumo claro e organizado
- Para históricos, liste cronologicamente
- Para análises, calcule os valores e forneça insights úteis
- Sempre formate valores monetários como R$ X.XXX,XX
` + commandLine + `
COMANDOS ESPECIAIS QUE VOCÊ RECONHECE:
- "STATUS DA FROTA" - Resumo geral
- "HISTÓRICO DO [VEÍCULO]" - Todas as manutenções de um veículo específico
- "ATUALIZAR KM [PLACA/NÚMERO] [NOVA_KM]" - Atualizar quilometragem (já executado automaticamente)`
}

// mapGatewayError translates upstream failures into the statuses the
// relay contract distinguishes. The gateway may answer with an
// OpenAI-shaped error body or a bare status, so both error types count.
func mapGatewayError(err error) error {
	status := 0

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch status {
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusPaymentRequired:
		return ErrInsufficientCredits
	}

	return fmt.Errorf("AI gateway error: %w", err)
}
