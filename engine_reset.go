package authflow

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// resetMailBody is the fixed notification template; the single parameter is
// the generated reset code.
const resetMailBody = "Your reset code is: <b>%s</b>"

// ForgotPassword describes the forgotpassword operation and its observable behavior.
//
// On a known email it draws a fresh reset code from the configured range,
// overwrites any prior code on the account, persists the update, and then
// sends the notification. The persist-then-notify order is deliberate: if
// delivery fails the code stays stored and the operation returns
// [ErrNotifyFailed] so the caller sees the partial-failure state precisely.
//
// ForgotPassword may return an error when dependency calls fail; business
// rejections are returned as an unsuccessful [Result] with a nil error.
func (e *Engine) ForgotPassword(ctx context.Context, email string) (Result, error) {
	if !e.ready() || e.notifier == nil || e.codes == nil {
		return Result{}, ErrEngineNotReady
	}

	account, err := e.store.FindByEmail(ctx, email)
	if errors.Is(err, ErrAccountNotFound) {
		e.metricInc(MetricResetRequestRejected)
		return failure(KeyEmailNotFound), nil
	}
	if err != nil {
		return Result{}, errors.Join(ErrStoreUnavailable, err)
	}

	code, err := e.codes.ResetCode(e.config.Reset.CodeMin, e.config.Reset.CodeMax)
	if err != nil {
		return Result{}, err
	}

	account.ResetCode = code
	account.UpdatedAt = time.Now()
	if err := e.store.Update(ctx, account); err != nil {
		return Result{}, errors.Join(ErrStoreUnavailable, err)
	}
	e.metricInc(MetricResetRequest)

	body := fmt.Sprintf(resetMailBody, code)
	if err := e.notifier.Send(ctx, account.Email, e.config.Reset.MailSubject, body); err != nil {
		e.metricInc(MetricNotifyFailure)
		return Result{}, errors.Join(ErrNotifyFailed, err)
	}

	return Result{
		Success: true,
		Key:     KeyResetCodeSent,
		Message: KeyResetCodeSent.Format(account.Email),
	}, nil
}

// VerifyResetCode describes the verifyresetcode operation and its observable behavior.
//
// The lookup requires exact, case-sensitive equality of email and stored code.
// Unknown email, no active code, and mismatched code all collapse into the
// single InvalidResetCode outcome so the response is not an oracle. The
// operation is read-only: a matching code is not consumed.
//
// VerifyResetCode may return an error when dependency calls fail; business
// rejections are returned as an unsuccessful [Result] with a nil error.
func (e *Engine) VerifyResetCode(ctx context.Context, email, code string) (Result, error) {
	if !e.ready() {
		return Result{}, ErrEngineNotReady
	}

	account, err := e.findByEmailAndCode(ctx, email, code)
	if err != nil {
		return Result{}, err
	}
	if account == nil {
		e.metricInc(MetricResetVerifyFailure)
		return failure(KeyInvalidResetCode), nil
	}

	e.metricInc(MetricResetVerifySuccess)
	return success(KeyVerifySuccess), nil
}

// ResetPassword describes the resetpassword operation and its observable behavior.
//
// On a matching (email, code) pair it replaces the password hash, clears the
// reset code, and persists both in one update. When
// [ResetConfig.EnforcePasswordPolicy] is on (the default) a weak new password
// is rejected with WeakPassword and the code stays active.
//
// ResetPassword may return an error when dependency calls fail; business
// rejections are returned as an unsuccessful [Result] with a nil error.
func (e *Engine) ResetPassword(ctx context.Context, email, code, newPassword string) (Result, error) {
	if !e.ready() {
		return Result{}, ErrEngineNotReady
	}

	account, err := e.findByEmailAndCode(ctx, email, code)
	if err != nil {
		return Result{}, err
	}
	if account == nil {
		e.metricInc(MetricResetConfirmFailure)
		return failure(KeyInvalidResetCode), nil
	}

	if e.config.Reset.EnforcePasswordPolicy && !validPassword(newPassword, e.config.PasswordPolicy) {
		e.metricInc(MetricResetConfirmFailure)
		return failure(KeyWeakPassword), nil
	}

	hash, err := e.passwordHash.Hash(newPassword)
	if err != nil {
		return Result{}, err
	}

	account.PasswordHash = hash
	account.ResetCode = ""
	account.UpdatedAt = time.Now()
	if err := e.store.Update(ctx, account); err != nil {
		return Result{}, errors.Join(ErrStoreUnavailable, err)
	}

	e.metricInc(MetricResetConfirmSuccess)
	return success(KeyResetPasswordSuccess), nil
}

// findByEmailAndCode maps the store's not-found sentinel to a nil account so
// callers produce one uniform business outcome. An empty code never matches:
// it would otherwise compare equal to accounts with no active reset window in
// stores that encode absence as the empty string.
func (e *Engine) findByEmailAndCode(ctx context.Context, email, code string) (*Account, error) {
	if code == "" {
		return nil, nil
	}

	account, err := e.store.FindByEmailAndResetCode(ctx, email, code)
	if errors.Is(err, ErrAccountNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return account, nil
}
