package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/farouk24967/NutriVision/models"
	"github.com/farouk24967/NutriVision/utils"

	"github.com/google/uuid"
)

const (
	geminiFlashModel = "gemini-2.5-flash"
	geminiChatModel  = "gemini-3-pro-preview"
)

// ChatApology is returned for any chat failure instead of an error.
const ChatApology = "I'm having trouble connecting to the server. Please try again."

type GeminiService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewGeminiService initializes the client with credentials from the
// environment. The base URL is overridable for tests.
func NewGeminiService() *GeminiService {
	return &GeminiService{
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Request/response shapes for the generateContent endpoint.
type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiService) generate(model string, req geminiRequest) (string, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal Gemini payload: %w", err)
	}

	u := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, model, g.apiKey)
	resp, err := g.client.Post(u, "application/json", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("failed to call Gemini API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read Gemini response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error %d: %s", resp.StatusCode, string(body))
	}

	var gr geminiResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", fmt.Errorf("failed to parse Gemini JSON: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no text response from Gemini")
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}

// stripFences removes markdown code fences the model sometimes wraps JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// splitDataURI separates "data:<mime>;base64,<data>"; a bare base64 string
// is accepted as JPEG.
func splitDataURI(dataURI string) (mimeType, data string) {
	parts := strings.SplitN(dataURI, ",", 2)
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "data:") {
		return "image/jpeg", dataURI
	}
	mediaType := strings.TrimPrefix(parts[0], "data:")
	mimeType = strings.SplitN(mediaType, ";", 2)[0]
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return mimeType, parts[1]
}

// AnalyzeFoodImage asks the model to identify the dish in a base64-encoded
// photo and estimate its nutrition.
func (g *GeminiService) AnalyzeFoodImage(base64Image string) (*models.FoodAnalysis, error) {
	mimeType, data := splitDataURI(base64Image)

	prompt := `Analyze this image and identify the food items present.
Estimate the portion size and nutritional content for the entire visible dish.
Return the result in JSON format with the following structure:
{
  "name": "Name of the dish or main food item",
  "portionSize": "Estimated portion (e.g., 1 bowl, 200g)",
  "confidence": 0.95,
  "calories": 500,
  "protein": 30,
  "carbs": 60,
  "fats": 15,
  "analysis": "Short description of what was detected"
}`

	text, err := g.generate(geminiFlashModel, geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{InlineData: &geminiInlineData{MimeType: mimeType, Data: data}},
				{Text: prompt},
			},
		}},
		GenerationConfig: &geminiGenerationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return nil, err
	}

	var analysis models.FoodAnalysis
	if err := json.Unmarshal([]byte(stripFences(text)), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse food analysis JSON: %w", err)
	}
	return &analysis, nil
}

// GenerateWeeklyPlan builds a 7-day personalized meal plan from the user's
// biometrics. The plan-goal classification inside the prompt deliberately
// uses the 18/20 BMI cut points, not the display thresholds.
func (g *GeminiService) GenerateWeeklyPlan(profile models.UserProfile) (*models.WeeklyPlan, error) {
	bmi := utils.CalculateBMI(profile.Weight, profile.Height)

	prompt := fmt.Sprintf(`You are an expert nutritionist AI. Generate a highly personalized 7-day meal plan (Monday to Sunday) for a user with the following biometrics:

- Age: %d
- Height: %.0f cm
- Weight: %.0f kg
- Activity Level: %s
- Calculated BMI: %.1f
- Stated Goal: %s

CRITICAL LOGIC TO APPLY:
1. If BMI < 18: The user is Underweight. Create a CALORIC SURPLUS plan focused on Muscle Gain & Recovery. High protein, complex carbs.
2. If BMI > 20: The user is indicated for Weight Loss (based on user preference logic). Create a CALORIC DEFICIT plan. High protein, high volume vegetables, controlled fats/carbs.
3. Otherwise: Focus on maintenance and healthy habits.

REQUIREMENTS:
- Generate a plan for exactly 7 days (Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday).
- For EACH day, provide 4 meals: Breakfast, Lunch, Dinner, Snack.
- Ensure nutritional values (Calories, Protein, Carbs, Fats) are accurate and aligned with the goal.
- Variety is key. Do not repeat the exact same meals every day.

Return strictly JSON with this shape:
{"week": [{"day": "Monday", "meals": [{"mealType": "Breakfast", "name": "...", "description": "...", "nutrients": {"calories": 0, "protein": 0, "carbs": 0, "fats": 0}}]}]}`,
		profile.Age, profile.Height, profile.Weight, profile.ActivityLevel, bmi, profile.Goal)

	text, err := g.generate(geminiFlashModel, geminiRequest{
		Contents:         []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &geminiGenerationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return nil, err
	}

	var plan models.WeeklyPlan
	if err := json.Unmarshal([]byte(stripFences(text)), &plan); err != nil {
		return nil, fmt.Errorf("failed to parse meal plan JSON: %w", err)
	}
	if plan.Week == nil {
		plan.Week = []models.DailyPlan{}
	}
	return &plan, nil
}

// fallbackQuiz is served whenever quiz generation fails; the feature must
// never surface an error to the user.
func fallbackQuiz() models.QuizQuestion {
	return models.QuizQuestion{
		ID:            "fallback",
		Question:      "Which macronutrient is the body's primary source of energy?",
		Options:       []string{"Protein", "Carbohydrates", "Fats", "Water"},
		CorrectAnswer: 1,
		Explanation:   "Carbohydrates are broken down into glucose, which is the main energy source for the body's cells.",
	}
}

// GenerateDailyQuiz returns a fresh nutrition question, or the fixed
// fallback question on any failure.
func (g *GeminiService) GenerateDailyQuiz() models.QuizQuestion {
	prompt := `Generate a single multiple-choice question about nutrition, healthy eating, or fitness science.
Provide 4 options, 1 correct answer (index 0-3), and a short explanation.
Return strictly JSON: {"question": "...", "options": ["...", "...", "...", "..."], "correctAnswer": 0, "explanation": "..."}`

	text, err := g.generate(geminiFlashModel, geminiRequest{
		Contents:         []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &geminiGenerationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return fallbackQuiz()
	}

	var quiz models.QuizQuestion
	if err := json.Unmarshal([]byte(stripFences(text)), &quiz); err != nil {
		return fallbackQuiz()
	}
	quiz.ID = uuid.NewString()
	return quiz
}

// ChatSession is one identity's conversational context. It is owned by the
// session that created it and is discarded on logout or identity switch so
// conversations never cross identities.
type ChatSession struct {
	mu      sync.Mutex
	gemini  *GeminiService
	system  geminiContent
	history []geminiContent
}

func (g *GeminiService) NewChatSession(profile models.UserProfile) *ChatSession {
	bmi := utils.CalculateBMI(profile.Weight, profile.Height)

	system := fmt.Sprintf(`You are "NutriVision Chatbot", a specialized AI assistant for the NutriVision app.

YOUR CONTEXT:
- The user is %s, Age: %d, Weight: %.0fkg, Goal: %s.
- Calculated BMI: %.1f.

YOUR RULES:
1. ONLY answer questions related to Nutrition, Fitness, Diet, Health, and the Features of the NutriVision App (Scanner, Meal Planner, Dashboard).
2. If the user asks about politics, coding (outside the app), celebrities, or general off-topic items, politely refuse and steer the conversation back to health.
3. Be encouraging, empathetic, and professional.
4. Keep answers concise but helpful.
5. Use the user's data (Goal/BMI) to tailor your advice.`,
		profile.Name, profile.Age, profile.Weight, profile.Goal, bmi)

	return &ChatSession{
		gemini: g,
		system: geminiContent{Parts: []geminiPart{{Text: system}}},
	}
}

// SendMessage appends the user turn, asks the model for a reply and records
// it in the rolling history. Failures yield the fixed apology string.
func (c *ChatSession) SendMessage(text string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	turn := geminiContent{Role: "user", Parts: []geminiPart{{Text: text}}}
	contents := append(append([]geminiContent{}, c.history...), turn)

	reply, err := c.gemini.generate(geminiChatModel, geminiRequest{
		Contents:          contents,
		SystemInstruction: &c.system,
	})
	if err != nil || reply == "" {
		return ChatApology
	}

	c.history = append(c.history, turn, geminiContent{Role: "model", Parts: []geminiPart{{Text: reply}}})
	return reply
}
