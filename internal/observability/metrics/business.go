package metrics

import "time"

// RecordStoreOperation records one object-store operation with its outcome.
func RecordStoreOperation(backend, typ, operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	StoreOperationsTotal.WithLabelValues(backend, typ, operation, status).Inc()
	StoreOperationDuration.WithLabelValues(backend, typ, operation).Observe(duration.Seconds())
}

// RecordArticleTransition records an article status transition such as
// "publish" or "archive".
func RecordArticleTransition(transition string) {
	ArticleTransitionsTotal.WithLabelValues(transition).Inc()
}

// RecordCodeSent records a verification code dispatched for the purpose.
func RecordCodeSent(purpose string) {
	VerificationCodesSentTotal.WithLabelValues(purpose).Inc()
}

// RecordCodesSwept records expired verification codes dropped by the sweep.
func RecordCodesSwept(count int) {
	VerificationCodesSweptTotal.Add(float64(count))
}

// UpdateUsersTotal updates the registered-account gauge. Called periodically
// from the wiring binary.
func UpdateUsersTotal(count int) {
	UsersTotal.Set(float64(count))
}
