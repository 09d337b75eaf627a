package scenario

import (
	"fmt"
	"strings"
)

const notSpecified = "не указано"

const contractSystemPrompt = `Ты — опытный юрист по договорному праву. ` +
	`Составляй проекты договоров на русском языке строгим деловым стилем. ` +
	`Пиши обычным структурированным текстом без какой-либо разметки: без markdown, без списков со звёздочками, без таблиц. ` +
	`Договор должен содержать преамбулу, нумерованные разделы (предмет, права и обязанности сторон, цена и порядок расчётов, ` +
	`ответственность, срок действия, заключительные положения) и место для реквизитов и подписей сторон.`

const claimSystemPrompt = `Ты — опытный юрист по претензионной работе. ` +
	`Составляй досудебные претензии на русском языке строгим деловым стилем. ` +
	`Пиши обычным структурированным текстом без какой-либо разметки. ` +
	`Претензия должна содержать шапку с адресатом, изложение обстоятельств, правовое обоснование, ` +
	`чётко сформулированные требования и срок для ответа.`

const clauseSystemPrompt = `Ты — опытный юрист-аналитик. ` +
	`Анализируй пункты договоров на русском языке. ` +
	`Пиши обычным структурированным текстом без какой-либо разметки. ` +
	`Ответ должен содержать: как пункт будет истолкован, какие риски он создаёт для каждой из сторон ` +
	`и рекомендации по его улучшению.`

type labeledField struct {
	label string
	key   fieldKey
}

func buildMessage(fields map[string]string, parts []labeledField, instruction string) string {
	var b strings.Builder
	for _, p := range parts {
		value := lookup(fields, p.key)
		if value == "" {
			value = notSpecified
		}
		fmt.Fprintf(&b, "%s: %s\n", p.label, value)
	}
	b.WriteString(instruction)
	return b.String()
}

func buildContractMessage(fields map[string]string) string {
	return buildMessage(fields, []labeledField{
		{"Тип договора", fieldContractType},
		{"Стороны", fieldParties},
		{"Предмет", fieldSubject},
		{"Срок", fieldTerm},
		{"Цена и порядок расчетов", fieldPrice},
		{"Особые условия", fieldSpecial},
	}, "Составь полный проект договора по этим данным.")
}

func buildClaimMessage(fields map[string]string) string {
	return buildMessage(fields, []labeledField{
		{"Получатель претензии", fieldRecipient},
		{"Обстоятельства", fieldFacts},
		{"Требования", fieldDemands},
		{"Срок ответа", fieldReplyDeadline},
	}, "Составь текст досудебной претензии по этим данным.")
}

func buildClauseMessage(fields map[string]string) string {
	return buildMessage(fields, []labeledField{
		{"Текст пункта", fieldClauseText},
		{"Контекст", fieldClauseContext},
	}, "Проанализируй этот пункт договора: толкование, риски сторон, рекомендации.")
}
