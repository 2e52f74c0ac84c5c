package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/nightly/internal/models"
)

type HabitCmd struct {
	Add       HabitAddCmd       `cmd:"" help:"Add a new habit."`
	List      HabitListCmd      `cmd:"" help:"List habits."`
	Archive   HabitArchiveCmd   `cmd:"" help:"Archive a habit (stops tracking, keeps history)."`
	Unarchive HabitUnarchiveCmd `cmd:"" help:"Reactivate an archived habit."`
	Delete    HabitDeleteCmd    `cmd:"" help:"Delete a habit (soft delete)."`
	Restore   HabitRestoreCmd   `cmd:"" help:"Restore a deleted habit."`
}

type HabitAddCmd struct {
	Title     string `arg:"" help:"Habit title."`
	Icon      string `help:"Emoji shown next to the habit. Defaults to a title-based guess."`
	Color     string `help:"ANSI color code for the habit."`
	TimeOfDay string `help:"When the habit belongs: morning, afternoon, or night." enum:"morning,afternoon,night," default:""`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	settings, err := ctx.LoadSettings()
	if err != nil {
		return err
	}

	if _, err := ctx.Store.GetHabitByTitle(c.Title); err == nil {
		return fmt.Errorf("habit with title %q already exists", c.Title)
	}

	existing, err := ctx.Store.ListActiveHabits(settings.UserID)
	if err != nil {
		return err
	}

	habit := models.Habit{
		ID:        uuid.New().String(),
		UserID:    settings.UserID,
		Title:     c.Title,
		Icon:      c.Icon,
		Color:     c.Color,
		TimeOfDay: models.TimeOfDay(c.TimeOfDay),
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	// Icon and color stay empty unless set explicitly; the display
	// fallback is derived at render time, never persisted.
	if err := ctx.Store.AddHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s %s\n", habit.DisplayIcon(len(existing)), habit.Title)
	return nil
}

type HabitListCmd struct {
	Archived bool `help:"Include archived habits."`
	Deleted  bool `help:"Include deleted habits."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits(c.Archived, c.Deleted)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for i, habit := range habits {
		status := ""
		if habit.DeletedAt != nil {
			status = " [DELETED]"
		} else if !habit.IsActive {
			status = " [ARCHIVED]"
		}
		tod := ""
		if habit.TimeOfDay != "" {
			tod = fmt.Sprintf(" (%s)", habit.TimeOfDay)
		}
		fmt.Printf("%s %s%s%s\n", habit.DisplayIcon(i), habit.Title, tod, status)
	}

	return nil
}

type HabitArchiveCmd struct {
	Title string `arg:"" help:"Habit title."`
}

func (c *HabitArchiveCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.Store.GetHabitByTitle(c.Title)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Title)
	}
	if err := ctx.Store.ArchiveHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Archived habit: %s\n", habit.Title)
	return nil
}

type HabitUnarchiveCmd struct {
	Title string `arg:"" help:"Habit title."`
}

func (c *HabitUnarchiveCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.Store.GetHabitByTitle(c.Title)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Title)
	}
	if err := ctx.Store.UnarchiveHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Reactivated habit: %s\n", habit.Title)
	return nil
}

type HabitDeleteCmd struct {
	Title string `arg:"" help:"Habit title."`
	Purge bool   `help:"Also delete the habit's logs."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.Store.GetHabitByTitle(c.Title)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Title)
	}
	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}
	if c.Purge {
		if err := ctx.Store.DeleteLogsForHabit(habit.ID); err != nil {
			return err
		}
	}

	fmt.Printf("Deleted habit: %s\n", habit.Title)
	return nil
}

type HabitRestoreCmd struct {
	Title string `arg:"" help:"Habit title."`
}

func (c *HabitRestoreCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// Deleted habits are invisible to title lookup, so scan everything.
	habits, err := ctx.Store.GetAllHabits(true, true)
	if err != nil {
		return err
	}
	for _, habit := range habits {
		if habit.DeletedAt != nil && habit.Title == c.Title {
			if err := ctx.Store.RestoreHabit(habit.ID); err != nil {
				return err
			}
			fmt.Printf("Restored habit: %s\n", habit.Title)
			return nil
		}
	}
	return fmt.Errorf("no deleted habit with title %q", c.Title)
}
