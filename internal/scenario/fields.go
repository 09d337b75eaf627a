package scenario

import "strings"

// Logical field keys. Inbound payloads carry Cyrillic field names in two
// historical variants (space-separated and underscore-separated); the alias
// table below maps every logical key to its spellings in preference order.
type fieldKey string

const (
	fieldScenario      fieldKey = "scenario"
	fieldFormat        fieldKey = "format"
	fieldContractType  fieldKey = "contract_type"
	fieldParties       fieldKey = "parties"
	fieldSubject       fieldKey = "subject"
	fieldTerm          fieldKey = "term"
	fieldPrice         fieldKey = "price"
	fieldSpecial       fieldKey = "special"
	fieldFacts         fieldKey = "facts"
	fieldDemands       fieldKey = "demands"
	fieldRecipient     fieldKey = "recipient"
	fieldReplyDeadline fieldKey = "reply_deadline"
	fieldClauseText    fieldKey = "clause_text"
	fieldClauseContext fieldKey = "clause_context"
)

// fieldAliases is consulted in order; the first non-empty value wins.
var fieldAliases = map[fieldKey][]string{
	fieldScenario:      {"scenario", "сценарий", "Сценарий"},
	fieldFormat:        {"формат", "format"},
	fieldContractType:  {"Тип договора", "Тип_договора"},
	fieldParties:       {"Стороны", "Стороны_договора"},
	fieldSubject:       {"Предмет", "Предмет_договора"},
	fieldTerm:          {"Срок", "Срок_действия"},
	fieldPrice:         {"Цена и порядок расчетов", "Цена_и_порядок_расчетов"},
	fieldSpecial:       {"Особые условия", "Особые_условия"},
	fieldFacts:         {"Обстоятельства", "Обстоятельства_дела"},
	fieldDemands:       {"Требования", "Требования_заявителя"},
	fieldRecipient:     {"Получатель претензии", "Получатель_претензии"},
	fieldReplyDeadline: {"Срок ответа", "Срок_ответа"},
	fieldClauseText:    {"Текст пункта", "Текст_пункта"},
	fieldClauseContext: {"Контекст", "Контекст_сделки"},
}

// lookup returns the first non-empty value among the key's aliases.
func lookup(fields map[string]string, key fieldKey) string {
	for _, alias := range fieldAliases[key] {
		if v := strings.TrimSpace(fields[alias]); v != "" {
			return v
		}
	}
	return ""
}

// ScenarioTag extracts the scenario value from a raw payload, checking the
// English key and the Cyrillic spellings.
func ScenarioTag(fields map[string]string) string {
	return lookup(fields, fieldScenario)
}
