// Package browser wraps chromedp with the handful of operations the notebook
// scraper needs: navigation, selector waits, clicks, HTML capture and cookie
// transfer between the live browser and the persisted session state.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"

	"github.com/mrlokans/kindle-notebook/internal/session"
)

// Options controls how the browser is launched.
type Options struct {
	// Headless runs Chrome without a window. The login flow needs a visible
	// browser so the human can complete the Amazon sign-in (2FA, CAPTCHA).
	Headless bool
	// ExecPath points at an alternate browser binary. Empty means whatever
	// chromedp finds on the system.
	ExecPath string
}

// Browser is a single running Chrome instance. Use is strictly sequential:
// one tab, one operation at a time.
type Browser struct {
	ctx     context.Context
	cancels []context.CancelFunc
}

// Launch starts Chrome. The caller must Close the returned Browser.
func Launch(ctx context.Context, opts Options) (*Browser, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	b := &Browser{
		ctx:     browserCtx,
		cancels: []context.CancelFunc{cancelBrowser, cancelAlloc},
	}

	// Start the browser process now so launch failures surface here instead
	// of on the first navigation.
	if err := chromedp.Run(browserCtx); err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	return b, nil
}

// Close shuts the browser down and releases its resources.
func (b *Browser) Close() {
	for _, cancel := range b.cancels {
		cancel()
	}
}

// Navigate loads a URL and blocks until the page load event fires.
func (b *Browser) Navigate(url string) error {
	if err := chromedp.Run(b.ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// WaitVisible blocks until the selector matches a visible node or the
// timeout elapses.
func (b *Browser) WaitVisible(selector string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(b.ctx, timeout)
	defer cancel()

	if err := chromedp.Run(ctx, chromedp.WaitVisible(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("timed out waiting for %q: %w", selector, err)
	}
	return nil
}

// Click clicks the first node matching the selector.
func (b *Browser) Click(selector string) error {
	if err := chromedp.Run(b.ctx, chromedp.Click(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("failed to click %q: %w", selector, err)
	}
	return nil
}

// Location returns the current page URL.
func (b *Browser) Location() (string, error) {
	var url string
	if err := chromedp.Run(b.ctx, chromedp.Location(&url)); err != nil {
		return "", fmt.Errorf("failed to read page location: %w", err)
	}
	return url, nil
}

// HTML captures the full document markup of the current page.
func (b *Browser) HTML() (string, error) {
	var html string
	if err := chromedp.Run(b.ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("failed to capture page HTML: %w", err)
	}
	return html, nil
}

// Sleep pauses for the given duration within the browser context.
func (b *Browser) Sleep(d time.Duration) error {
	return chromedp.Run(b.ctx, chromedp.Sleep(d))
}

// Cookies exports all cookies from the running browser.
func (b *Browser) Cookies() ([]session.Cookie, error) {
	var cookies []session.Cookie
	err := chromedp.Run(b.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		cdpCookies, err := storage.GetCookies().Do(ctx)
		if err != nil {
			return err
		}
		for _, c := range cdpCookies {
			cookies = append(cookies, session.Cookie{
				Name:     c.Name,
				Value:    c.Value,
				Domain:   c.Domain,
				Path:     c.Path,
				Expires:  c.Expires,
				HTTPOnly: c.HTTPOnly,
				Secure:   c.Secure,
				SameSite: c.SameSite.String(),
			})
		}
		return nil
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to export cookies: %w", err)
	}
	return cookies, nil
}

// SetCookies restores previously captured cookies into the browser.
func (b *Browser) SetCookies(cookies []session.Cookie) error {
	params := make([]*network.CookieParam, 0, len(cookies))
	for _, c := range cookies {
		param := &network.CookieParam{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
		}
		if c.SameSite != "" {
			param.SameSite = network.CookieSameSite(c.SameSite)
		}
		if c.Expires > 0 {
			expires := cdp.TimeSinceEpoch(time.Unix(int64(c.Expires), 0))
			param.Expires = &expires
		}
		params = append(params, param)
	}

	err := chromedp.Run(b.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		return network.SetCookies(params).Do(ctx)
	}))
	if err != nil {
		return fmt.Errorf("failed to restore cookies: %w", err)
	}
	return nil
}
