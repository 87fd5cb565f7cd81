package notebook

import (
	"fmt"
	"strings"
	"time"

	"github.com/mrlokans/kindle-notebook/internal/browser"
	"github.com/mrlokans/kindle-notebook/internal/entities"
	"github.com/mrlokans/kindle-notebook/internal/session"
)

// Config holds the notebook URL and page timing knobs.
type Config struct {
	URL string

	// NavigationTimeout bounds the initial wait for the library sidebar,
	// AnnotationTimeout bounds the per-book wait after a click.
	NavigationTimeout time.Duration
	AnnotationTimeout time.Duration

	// SettleDelay gives the annotation list a moment to finish rendering
	// before the page is captured.
	SettleDelay time.Duration
}

// Client drives the Kindle notebook page through an authenticated browser.
type Client struct {
	browser *browser.Browser
	cfg     Config
}

func NewClient(b *browser.Browser, cfg Config) *Client {
	return &Client{browser: b, cfg: cfg}
}

// Open restores the saved session, navigates to the notebook and waits for
// the library sidebar. Landing on the Amazon sign-in page means the session
// has expired server-side.
func (c *Client) Open(state *session.State) error {
	if err := c.browser.SetCookies(state.Cookies); err != nil {
		return err
	}

	if err := c.browser.Navigate(c.cfg.URL); err != nil {
		return fmt.Errorf("failed to open notebook: %w", err)
	}

	loc, err := c.browser.Location()
	if err != nil {
		return err
	}
	if isSignInURL(loc) {
		return ErrSessionExpired
	}

	if err := c.browser.WaitVisible(LibrarySelector, c.cfg.NavigationTimeout); err != nil {
		// The wait races a possible sign-in redirect, re-check before
		// reporting a plain timeout.
		if loc, locErr := c.browser.Location(); locErr == nil && isSignInURL(loc) {
			return ErrSessionExpired
		}
		return err
	}

	return nil
}

// Books lists the books currently shown in the library sidebar.
func (c *Client) Books() ([]entities.Book, error) {
	html, err := c.browser.HTML()
	if err != nil {
		return nil, err
	}
	return ParseLibrary(html)
}

// Highlights selects a book in the sidebar and scrapes its annotations in
// source order. No retry: a wait failure aborts the whole run.
func (c *Client) Highlights(book entities.Book) ([]entities.Highlight, error) {
	if err := c.browser.Click(bookSelector(book)); err != nil {
		return nil, fmt.Errorf("failed to select %q: %w", book.Title, err)
	}

	if err := c.browser.WaitVisible(AnnotationsSelector, c.cfg.AnnotationTimeout); err != nil {
		return nil, fmt.Errorf("annotations did not load for %q: %w", book.Title, err)
	}

	if c.cfg.SettleDelay > 0 {
		if err := c.browser.Sleep(c.cfg.SettleDelay); err != nil {
			return nil, err
		}
	}

	html, err := c.browser.HTML()
	if err != nil {
		return nil, err
	}
	return ParseAnnotations(html)
}

// bookSelector prefers the stable ASIN element id and falls back to the
// sidebar position for documents without one.
func bookSelector(book entities.Book) string {
	if book.ASIN != "" {
		return "#" + book.ASIN
	}
	return fmt.Sprintf("%s:nth-of-type(%d)", LibrarySelector, book.Index+1)
}

func isSignInURL(url string) bool {
	return strings.Contains(url, "signin") || strings.Contains(url, "/ap/")
}
