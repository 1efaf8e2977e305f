package blogdesk

import "time"

// SeedUsers returns the demo accounts.
func SeedUsers() []User {
	return []User{
		{
			ID:        "user-1",
			Name:      "Admin User",
			Email:     "admin@example.com",
			Role:      RoleAdmin,
			AvatarURL: "https://images.pexels.com/photos/614810/pexels-photo-614810.jpeg",
		},
		{
			ID:        "user-2",
			Name:      "Core User",
			Email:     "user@example.com",
			Role:      RoleStandard,
			AvatarURL: "https://images.pexels.com/photos/774909/pexels-photo-774909.jpeg",
		},
	}
}

// SeedBlogs returns the demo blogs, one per category.
func SeedBlogs() []Blog {
	ts := func(s string) time.Time {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			panic(err)
		}
		return t
	}
	return []Blog{
		{
			ID:         "blog-1",
			Title:      "Summer Fashion Trends 2025",
			Summary:    "Discover the hottest fashion trends for summer 2025, from sustainable materials to bold color palettes.",
			Content:    "<h2>Summer Fashion Trends 2025</h2><p>This summer is all about sustainable fabrics, bright color blocking and relaxed silhouettes.</p><h3>Sustainable materials</h3><p>Organic cotton, hemp and recycled polyester lead the season.</p><h3>Bold colors</h3><p>Tangerine, cobalt and lime brighten every collection.</p>",
			CoverImage: "https://images.pexels.com/photos/1536619/pexels-photo-1536619.jpeg",
			Category:   CategoryTrend,
			Status:     StatusPublished,
			CreatedAt:  ts("2025-04-15T14:30:00Z"),
			UpdatedAt:  ts("2025-04-15T16:45:00Z"),
			AuthorID:   "user-1",
			Tags:       []string{"fashion", "summer", "trends", "sustainable"},
			Score:      Ptr(87),
		},
		{
			ID:         "blog-2",
			Title:      "Review: The Ultimate Smart Home Hub",
			Summary:    "An in-depth review of the latest smart home hub that promises to revolutionize how you control your connected devices.",
			Content:    "<h2>Review: The Ultimate Smart Home Hub</h2><p>We spent a month with the newest hub on the market.</p><h3>Setup</h3><p>Pairing took minutes and every device we owned was detected.</p><h3>Verdict</h3><p>Fast, private and easy to live with.</p>",
			CoverImage: "https://images.pexels.com/photos/4790255/pexels-photo-4790255.jpeg",
			Category:   CategoryReview,
			Status:     StatusPublished,
			CreatedAt:  ts("2025-04-10T09:15:00Z"),
			UpdatedAt:  ts("2025-04-10T11:30:00Z"),
			AuthorID:   "user-2",
			Tags:       []string{"smart home", "technology", "review", "gadgets"},
			Score:      Ptr(92),
		},
		{
			ID:         "blog-3",
			Title:      "5 Tips for Sustainable Shopping",
			Summary:    "Learn how to make more environmentally conscious shopping decisions without sacrificing style or quality.",
			Content:    "<h2>5 Tips for Sustainable Shopping</h2><ol><li>Buy less, choose well.</li><li>Check materials.</li><li>Shop second hand.</li><li>Support local makers.</li><li>Care for what you own.</li></ol>",
			CoverImage: "https://images.pexels.com/photos/5632399/pexels-photo-5632399.jpeg",
			Category:   CategoryTip,
			Status:     StatusDraft,
			CreatedAt:  ts("2025-04-05T13:20:00Z"),
			UpdatedAt:  ts("2025-04-05T15:10:00Z"),
			AuthorID:   "user-1",
			Tags:       []string{"sustainability", "shopping", "eco-friendly", "tips"},
			Score:      Ptr(78),
		},
	}
}
