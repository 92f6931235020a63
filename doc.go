// Package authflow provides the account-authentication engine behind the Inflow
// API: registration, credential verification, and the forgot-password /
// reset-code flow.
//
// The package is the decision core only. Persistence, mail delivery, and the
// HTTP surface are collaborators supplied through [Builder]: an [AccountStore],
// a [Notifier], a [Hasher], and a [CodeSource]. Engine methods are safe to call
// from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// authflow is the public surface. It exposes [Engine], [Builder], [Config], and
// value types ([Account], [Result], [MessageKey]). Store implementations live
// under store/, the SMTP notifier under notify/smtp, and the HTTP surface under
// httpapi — none of them contain business decisions.
//
// # What this package must NOT do
//
//   - Issue sessions or tokens of any kind. [Result.Token] is reserved and
//     always empty.
//   - Synchronize operations on the same account. The store's uniqueness
//     constraint on email is the correctness backstop for concurrent
//     registration; the engine's existence check is best-effort.
//   - Retry, time out, or parallelize collaborator calls. Each operation is a
//     single sequential pass; retry policy belongs to the collaborators.
//
// # Outcome contract
//
// Business outcomes are returned as a [Result] carrying a stable [MessageKey]
// and display text. Operational failures (store or notifier unavailable) are
// returned as Go errors distinct from any business outcome, so callers can
// never mistake "we could not email you" for "your code was wrong".
package authflow
