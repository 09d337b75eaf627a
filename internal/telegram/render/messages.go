package render

// User-facing bot messages.
const (
	MsgWelcome = `👋 Привет! Я помогу прикинуть расход материалов.

Выберите калькулятор из меню ниже, затем отвечайте на вопросы числами.`

	MsgHelp = `🤖 Команды бота:

/start - Показать меню калькуляторов
/help - Показать эту справку
/cancel - Прервать текущий расчёт

Как это работает:
1. Выберите калькулятор в меню
2. Отвечайте на вопросы числами (можно с запятой: 2,5)
3. Получите объём материалов с запасом 10%`

	MsgChooseCalc   = "Выберите калькулятор:"
	MsgCancelled    = "Расчёт прерван."
	MsgNothingToDo  = "Сейчас нет активного расчёта. Нажмите /start"
	MsgNoActiveFlow = "Чтобы начать расчёт, выберите калькулятор: /start"

	ErrNotANumber = "❌ Это не похоже на число. Введите число, например 2.5 или 2,5"
	ErrGeneric    = "❌ Произошла ошибка. Попробуйте ещё раз или нажмите /start"

	// AdviceFallback is used when the advisory model is unavailable.
	AdviceFallback = "💡 Совет: берите материалы с запасом около 10% — обрезки и неровности основания съедают больше, чем кажется."

	AdvicePrefix = "💡 Совет: "
)
