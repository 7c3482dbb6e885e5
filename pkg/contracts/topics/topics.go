package topics

const (
	// Auditoria das ações feitas no back-office
	BackofficeAudit = "backoffice_audit"
)
