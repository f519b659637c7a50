package domain

// Object and field API names used by the recent-sessions view.
const (
	ObjectServiceSession  = "ServiceSession__c"
	ObjectServiceSchedule = "ServiceSchedule__c"

	FieldStatus                 = "Status__c"
	FieldPrimaryServiceProvider = "PrimaryServiceProvider__c"
	FieldSessionStart           = "SessionStart__c"
	FieldServiceSchedule        = "ServiceSchedule__c"
	FieldService                = "Service__c"

	// FieldName is the display-name key read on the far side of a relationship.
	FieldName = "Name"
)

// StatusComplete is the status value that marks a session as done.
// Comparison is exact and case-sensitive.
const StatusComplete = "Complete"

// DateLiteralThisWeek is the relative date literal the sessions view requests.
const DateLiteralThisWeek = "THIS_WEEK"
