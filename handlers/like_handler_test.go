// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"fmt"
	"net/http"
	"testing"
)

func TestLikeToggleFlow(t *testing.T) {
	e, _ := newTestServer(t)
	alice := registerAndLogin(t, e, "alice99", "alice@example.com")
	bob := registerAndLogin(t, e, "bob", "bob@example.com")
	blog := mustCreateBlogViaAPI(t, e, alice, "Likeable")

	path := fmt.Sprintf("/api/likes/blog/%d", blog.ID)

	// Anonymous status read.
	rec := doJSON(t, e, http.MethodGet, path, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Anonymous like status failed with %d: %s", rec.Code, rec.Body.String())
	}
	status := decodeJSON[LikeStatusResponse](t, rec)
	if status.IsLiked || status.LikesCount != 0 {
		t.Errorf("Fresh blog should report is_liked=false count=0, got %+v", status)
	}

	rec = doJSON(t, e, http.MethodPost, path, nil, bob)
	if rec.Code != http.StatusOK {
		t.Fatalf("Like toggle failed with %d: %s", rec.Code, rec.Body.String())
	}
	toggled := decodeJSON[ToggleLikeResponse](t, rec)
	if !toggled.Liked || toggled.LikesCount != 1 {
		t.Errorf("First toggle should report liked=true count=1, got %+v", toggled)
	}

	// Bob's own view reflects his like, alice's does not.
	rec = doJSON(t, e, http.MethodGet, path, nil, bob)
	status = decodeJSON[LikeStatusResponse](t, rec)
	if !status.IsLiked || status.LikesCount != 1 {
		t.Errorf("Bob should see is_liked=true count=1, got %+v", status)
	}
	rec = doJSON(t, e, http.MethodGet, path, nil, alice)
	status = decodeJSON[LikeStatusResponse](t, rec)
	if status.IsLiked {
		t.Error("Alice has not liked, is_liked must be false for her")
	}
	if status.LikesCount != 1 {
		t.Errorf("Count is global, expected 1, got %d", status.LikesCount)
	}

	rec = doJSON(t, e, http.MethodPost, path, nil, bob)
	toggled = decodeJSON[ToggleLikeResponse](t, rec)
	if toggled.Liked || toggled.LikesCount != 0 {
		t.Errorf("Second toggle should report liked=false count=0, got %+v", toggled)
	}
}

func TestLikeEndpointsMissingBlog(t *testing.T) {
	e, _ := newTestServer(t)
	bob := registerAndLogin(t, e, "bob", "bob@example.com")

	rec := doJSON(t, e, http.MethodGet, "/api/likes/blog/9999", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Status for missing blog should yield 404, got %d", rec.Code)
	}
	rec = doJSON(t, e, http.MethodPost, "/api/likes/blog/9999", nil, bob)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Toggle for missing blog should yield 404, got %d", rec.Code)
	}
	rec = doJSON(t, e, http.MethodPost, "/api/likes/blog/9999", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Anonymous toggle should yield 401, got %d", rec.Code)
	}
}
