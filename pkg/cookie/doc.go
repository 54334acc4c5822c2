// Package cookie writes and reads HMAC-signed HTTP cookies.
//
// A signature covers the cookie name as well as its value, so a value lifted
// from one cookie does not verify under another name. Session cookies rely on
// this: the token issued as alnajah_session cannot be replayed as
// almajd_session.
//
// Several secrets may be configured for rotation. The first signs, all of
// them verify.
//
//	m, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")}, cookie.WithSecure(true))
//	if err != nil {
//		return err
//	}
//	m.SetSigned(w, "admin_session", token, cookie.WithMaxAge(86400))
//	token, err := m.GetSigned(r, "admin_session")
//
// Defaults are Path "/", HttpOnly and SameSite=Lax.
package cookie
