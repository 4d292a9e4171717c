package ocr

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/genai"

	"gitlab.com/yelinaung/receipt-ledger/internal/logger"
	"gitlab.com/yelinaung/receipt-ledger/internal/models"
)

// AnalyzeTimeout is the timeout applied to each model attempt.
const AnalyzeTimeout = 30 * time.Second

// FailedMerchantName marks a scan that exhausted every candidate model.
const FailedMerchantName = "Scan Failed (Quota/API Error)"

// Result is the structured data extracted from a receipt image. A
// failed scan is still a Result (see FailedResult): the caller always
// reaches the review step and can correct every field by hand.
type Result struct {
	MerchantName string
	Date         time.Time
	TotalAmount  decimal.Decimal
	Currency     string
	Category     string
	Items        []models.ReceiptItem
	Confidence   float64
}

// Failed reports whether this result is the failure sentinel.
func (r Result) Failed() bool {
	return r.MerchantName == FailedMerchantName && r.Confidence == 0
}

// FailedResult is the sentinel returned after every candidate model
// has been exhausted. It carries valid, editable data: zero amount,
// "Error" category, zero confidence.
func FailedResult(now time.Time) Result {
	return Result{
		MerchantName: FailedMerchantName,
		Date:         now,
		TotalAmount:  decimal.Zero,
		Currency:     models.DefaultCurrency,
		Category:     "Error",
		Items:        []models.ReceiptItem{},
		Confidence:   0,
	}
}

// AnalyzeReceipt extracts expense data from a receipt image, trying
// each candidate model in order. It never returns an error: when every
// model fails, the failure sentinel comes back instead, and no error
// channel distinguishes it from a low-confidence real result.
func (c *Client) AnalyzeReceipt(ctx context.Context, imageBytes []byte, mimeType string) Result {
	if len(imageBytes) == 0 {
		logger.Log.Warn().Msg("Receipt scan called with empty image")
		return FailedResult(time.Now().UTC())
	}

	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	prompt := buildReceiptPrompt()

	for _, model := range CandidateModels {
		result, err := c.tryModel(ctx, model, prompt, imageBytes, mimeType)
		if err != nil {
			logger.Log.Warn().
				Str("model", model).
				Err(err).
				Msg("Receipt scan attempt failed")
			continue
		}
		logger.Log.Debug().
			Str("model", model).
			Float64("confidence", result.Confidence).
			Msg("Receipt scanned")
		return result
	}

	logger.Log.Error().Msg("All candidate models failed, returning failed-scan result")
	return FailedResult(time.Now().UTC())
}

func (c *Client) tryModel(ctx context.Context, model, prompt string, imageBytes []byte, mimeType string) (Result, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, AnalyzeTimeout)
	defer cancel()

	resp, err := c.generator.GenerateContent(timeoutCtx, model, []*genai.Content{
		{
			Parts: []*genai.Part{
				{Text: prompt},
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: imageBytes}},
			},
		},
	}, nil)
	if err != nil {
		return Result{}, err
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return Result{}, fmt.Errorf("no response from model %s", model)
	}

	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			textContent += part.Text
		}
	}
	if textContent == "" {
		return Result{}, fmt.Errorf("empty response from model %s", model)
	}

	return parseReceiptResponse(textContent)
}

func buildReceiptPrompt() string {
	return `Analyze this receipt image and extract the following information in JSON format:
- merchantName (string): The name of the store or merchant.
- date (string): The date of the transaction in ISO 8601 format (YYYY-MM-DD). If not found, use an empty string.
- totalAmount (number): The total amount paid.
- currency (string): The currency code. Default to "INR" if the symbol is Rs or unclear.
- category (string): A category for this expense (e.g., Food, Travel, Utilities, Shopping, specific merchant type).
- items (array): An array of objects with 'name' (string) and 'amount' (number) for each line item.

Return ONLY raw JSON. No markdown formatting.`
}

type receiptResponse struct {
	MerchantName string  `json:"merchantName"`
	Date         string  `json:"date"`
	TotalAmount  float64 `json:"totalAmount"`
	Currency     string  `json:"currency"`
	Category     string  `json:"category"`
	Items        []struct {
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
	} `json:"items"`
}

func parseReceiptResponse(response string) (Result, error) {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	var rr receiptResponse
	if err := json.Unmarshal([]byte(response), &rr); err != nil {
		return Result{}, fmt.Errorf("failed to parse receipt response: %w", err)
	}

	result := Result{
		MerchantName: rr.MerchantName,
		TotalAmount:  decimal.NewFromFloat(rr.TotalAmount),
		Currency:     rr.Currency,
		Category:     rr.Category,
		Items:        []models.ReceiptItem{},
		Confidence:   0.9,
	}
	if result.MerchantName == "" {
		result.MerchantName = "Unknown Merchant"
	}
	if result.Currency == "" {
		result.Currency = models.DefaultCurrency
	}
	if result.Category == "" {
		result.Category = models.DefaultCategory
	}

	result.Date = time.Now().UTC()
	if rr.Date != "" {
		if date, err := time.Parse("2006-01-02", rr.Date); err == nil {
			result.Date = date
		}
	}

	for _, item := range rr.Items {
		result.Items = append(result.Items, models.ReceiptItem{
			Name:   item.Name,
			Amount: decimal.NewFromFloat(item.Amount),
		})
	}

	return result, nil
}
