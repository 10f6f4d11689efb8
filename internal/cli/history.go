// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history.go - Study activity log commands.
//
// Subcommands:
//   (none)          List recent activity
//   range A B       List activity between two dates (YYYY-MM-DD)
//   stats           Aggregate counts by activity type
//   clear           Delete the activity log (asks for confirmation)
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/jeranaias/studia-tui/internal/api"
)

// History dispatches the history subcommands.
func History(ctx context.Context, env Env, args []string) error {
	sub := ""
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "":
		return historyList(ctx, env)
	case "range":
		if len(args) != 3 {
			return fmt.Errorf("usage: studia history range <start> <end> (YYYY-MM-DD)")
		}
		return historyRange(ctx, env, args[1], args[2])
	case "stats":
		return historyStats(ctx, env)
	case "clear":
		return historyClear(ctx, env)
	default:
		return fmt.Errorf("unknown history subcommand %q", sub)
	}
}

func historyList(ctx context.Context, env Env) error {
	pageSize := 50
	if env.Config != nil && env.Config.Chat.HistoryPageSize > 0 {
		pageSize = env.Config.Chat.HistoryPageSize
	}

	page := env.Client.Activities(ctx, 1, pageSize)
	printActivities(env, page.Activities, page.Total)
	return nil
}

func historyRange(ctx context.Context, env Env, start, end string) error {
	for _, d := range []string{start, end} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("bad date %q, want YYYY-MM-DD", d)
		}
	}
	page := env.Client.ActivitiesRange(ctx, start, end)
	printActivities(env, page.Activities, page.Total)
	return nil
}

func historyStats(ctx context.Context, env Env) error {
	stats := env.Client.HistoryStats(ctx)
	fmt.Fprintf(env.Out, "total  %d\n", stats.Total)

	types := make([]string, 0, len(stats.ByType))
	for t := range stats.ByType {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(env.Out, "%-12s %d\n", t, stats.ByType[t])
	}
	return nil
}

func historyClear(ctx context.Context, env Env) error {
	fmt.Fprint(env.Out, "Delete your entire activity log? [y/N] ")
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	if strings.ToLower(strings.TrimSpace(answer)) != "y" {
		fmt.Fprintln(env.Out, "kept")
		return nil
	}

	if err := env.Client.ClearHistory(ctx); err != nil {
		return askError(err)
	}
	fmt.Fprintln(env.Out, "cleared")
	return nil
}

func printActivities(env Env, activities []api.Activity, total int) {
	if len(activities) == 0 {
		fmt.Fprintln(env.Out, "no activity yet")
		return
	}
	for _, a := range activities {
		ts := activityTime(a.Timestamp)
		fmt.Fprintf(env.Out, "%s  %-10s %s\n", ts, a.ActivityType, a.Message)
	}
	fmt.Fprintf(env.Out, "%d shown of %d\n", len(activities), total)
}

func activityTime(epoch float64) string {
	if epoch == 0 {
		return "                "
	}
	return time.Unix(int64(epoch), 0).Format("2006-01-02 15:04")
}
