package ai

import (
	"strings"

	"github.com/kent242/moneychat/internal/domain"
)

const parseSystemRules = `You are a financial assistant that parses natural language transaction inputs in Vietnamese or English.
Extract transaction details and categorize them accurately.
Always respond in JSON format only.

Important rules:
- Vietnamese currency: k = 1,000 VND (ví dụ: 45k = 45,000 VND)
- Default type is "expense" unless it's clearly income (lương, thu nhập, etc.)
- Infer merchant/description from context
- Be smart about categorization based on Vietnamese context
- If input contains multiple transactions (separated by commas, dashes, or "and"), return them as an array in "transactions" field
- Otherwise, return a single transaction object`

// parsePrompt builds the extraction prompt for one chat message. The
// category lists constrain what the model may pick.
func parsePrompt(message string, names domain.CategoryNames) string {
	var b strings.Builder

	b.WriteString(parseSystemRules)
	b.WriteString("\n\nParse this transaction input and extract details. The input may contain MULTIPLE transactions separated by commas, dashes, or \"and\".\n\n")
	b.WriteString("\"" + message + "\"\n\n")

	b.WriteString("Available categories:\n\n")
	b.WriteString("EXPENSE categories: " + strings.Join(names.Expense, ", ") + "\n\n")
	b.WriteString("INCOME categories: " + strings.Join(names.Income, ", ") + "\n\n")
	b.WriteString("Choose the most appropriate category from the list above based on the transaction description.\n\n")

	b.WriteString(`IMPORTANT: If the input contains multiple transactions, return them as an array. Otherwise, return a single object.

For SINGLE transaction, respond with JSON:
{
  "description": "brief description",
  "amount": numeric_amount_in_VND,
  "type": "expense" or "income",
  "category": "category name",
  "merchant": "merchant name or null",
  "confidence": 0.0-1.0,
  "reasoning": "brief explanation"
}

For MULTIPLE transactions, respond with JSON:
{
  "transactions": [
    {
      "description": "item 1",
      "amount": amount1,
      "type": "expense" or "income",
      "category": "category",
      "merchant": "merchant or null",
      "confidence": 0.0-1.0,
      "reasoning": "explanation"
    }
  ]
}

Examples:

Input: "Bún bò 45k"
Output: {"description": "Bún bò", "amount": 45000, "type": "expense", "category": "Food & Dining", "merchant": null, "confidence": 0.95, "reasoning": "Food purchase"}

Input: "cơm 10k, 20k nước"
Output: {"transactions": [{"description": "Cơm", "amount": 10000, "type": "expense", "category": "Food & Dining", "merchant": null, "confidence": 0.95, "reasoning": "Meal"}, {"description": "Nước", "amount": 20000, "type": "expense", "category": "Food & Dining", "merchant": null, "confidence": 0.9, "reasoning": "Beverage"}]}

Input: "cafe 25k - grab 30k"
Output: {"transactions": [{"description": "Cafe", "amount": 25000, "type": "expense", "category": "Food & Dining", "merchant": null, "confidence": 0.95, "reasoning": "Coffee"}, {"description": "Grab", "amount": 30000, "type": "expense", "category": "Transportation", "merchant": "Grab", "confidence": 0.95, "reasoning": "Ride service"}]}

Return ONLY valid raw JSON.
Do NOT wrap the response in code fences.`)

	return b.String()
}

// classifyPrompt builds the single-category classification prompt used
// when a transaction is created directly rather than through chat.
func classifyPrompt(description string, categories []string) string {
	var b strings.Builder

	b.WriteString("Classify this transaction description into exactly one category.\n\n")
	b.WriteString("Description: \"" + description + "\"\n\n")
	b.WriteString("Available categories: " + strings.Join(categories, ", ") + "\n\n")
	b.WriteString(`Respond with JSON only:
{
  "category": "category name from the list above",
  "confidence": 0.0-1.0
}

If none fits, use "Other".
Return ONLY valid raw JSON, no code fences.`)

	return b.String()
}
