package routes

import (
	"fmt"
	"net/http"
)

// PrivacyPolicyHandler serves the policy page linked from the Mini App listing.
func PrivacyPolicyHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	html := `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Spill Privacy Policy</title>
</head>
<body>
	<h1>Privacy Policy</h1>
	<p>Spill signs you in with the identity Telegram shares with Mini Apps: your user id, name, username, language and profile photo link.</p>
	<p>Your profile stores only what you enter on the edit screen: name, age, gender, bio, interests, photo links, social links and the photos you upload.</p>
	<p>Clearing a field on the edit screen removes it from your stored profile. Uploaded photos are served from our media storage under an unguessable address.</p>
</body>
</html>
`
	fmt.Fprint(w, html)
}
