// Package repositories maps the named JSON records of the persisted state
// (user list, OTP list, attempt lists, current session) onto typed access
// interfaces. Each write is a full read-modify-write of its record.
package repositories

// Record names. Kept stable so a populated store survives backend swaps.
const (
	UsersRecord         = "learnsphere_users"
	OTPsRecord          = "learnsphere_otps"
	LoginAttemptsRecord = "learnsphere_login_attempts"
	OTPAttemptsRecord   = "learnsphere_otp_attempts"
	SessionRecord       = "learnsphere_session"
)
