// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the studia TUI application.

This package defines the complete color palette, typography, and animation
system used throughout the application. All colors use Lip Gloss AdaptiveColor
for automatic light/dark terminal detection.

# Color System (colors.go)

## Primary Accent Colors

  - Purple - Primary accent for assistant messages and selections
  - Cyan - Brand color for info, commands, and user highlights
  - Emerald - Success states and the connected indicator
  - Amber - Warnings and pending deletions
  - Rose - Errors and failed turns

## Semantic Colors

Message bubbles and UI elements use semantic color tokens:

	UserBubbleBg      - Background for user messages
	UserBubbleFg      - Text color for user messages
	AssistantBubbleBg - Background for assistant messages
	AssistantBubbleFg - Text color for assistant messages
	PendingBubbleFg   - Muted text for placeholder turns
	ErroredBubbleFg   - Text for failed turns

## Surface Colors

Layered surface system for depth:

	Surface       - Main background
	SurfaceDim    - Subtle backgrounds (headers, status bars)
	SurfaceBright - Highlighted elements
	Overlay       - Borders and separators

## Text Colors

Hierarchical text color system:

	TextPrimary   - Main content text
	TextSecondary - Supporting text
	TextMuted     - De-emphasized text
	TextInverse   - Text on colored backgrounds

# Theme System (theme.go)

The Theme struct provides runtime color adaptation:

	theme := styles.NewTheme()
	if theme.IsDark {
		// Dark terminal detected
	}
	if theme.HasTrueColor {
		// Terminal supports 16M colors
	}

# Animation System (animations.go)

## Spinner Configurations

Pre-defined spinner styles:

	BrailleSpinner - Smooth 10-frame spinner
	DotsSpinner    - Classic three-dot animation
	PulseSpinner   - Pulsing indicator for uploads

## Progress Bars

RenderProgressBar draws ASCII progress bars. The undo toast uses it to
show how much of the undo window remains before a deletion commits.

# Usage Example

	import "github.com/jeranaias/studia-tui/internal/ui/styles"

	// Use adaptive colors
	headerStyle := lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextPrimary)

	// Use theme for runtime detection
	theme := styles.NewTheme()
	bubble := theme.AssistantBubble.Render(text)
*/
package styles
