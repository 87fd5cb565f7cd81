package notebook

import "errors"

// ErrSessionExpired indicates Amazon redirected to the sign-in page instead
// of serving the notebook. The saved session is no longer valid.
var ErrSessionExpired = errors.New("kindle session expired, run the login command again")
