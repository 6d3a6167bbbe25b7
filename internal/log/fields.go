package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldUserID      = "user_id"
	FieldCommand     = "command"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldEntryID     = "entry_id"
	FieldKind        = "kind"
	FieldDate        = "date"
	FieldCategory    = "category"
	FieldSubcategory = "subcategory"
	FieldAmountCents = "amount_cents"
	FieldPeriod      = "period"
	FieldQueue       = "queue"
	FieldExchange    = "exchange"
	FieldSheetsRef   = "sheets_ref"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentEngine   = "engine"
	ComponentStorage  = "storage"
	ComponentLedger   = "ledger"
	ComponentAMQP     = "amqp"
	ComponentMirror   = "mirror"
	ComponentExport   = "export"
	ComponentTelegram = "telegram"
	ComponentAdmin    = "admin"
)

// Operations defines standard operation names
const (
	OpInsert   = "insert"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpQuery    = "query"
	OpExport   = "export"
	OpPublish  = "publish"
	OpConsume  = "consume"
	OpMirror   = "mirror"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
