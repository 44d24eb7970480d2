package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"
)

func (a *App) List(ctx context.Context) error {
	items, err := a.api.ListItems(ctx)
	if err != nil {
		return a.report(err)
	}

	if len(items) == 0 {
		a.printf("No items yet\n")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", it.ID, it.Name, it.Description)
	}
	return tw.Flush()
}

func (a *App) Add(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	if name == "" {
		a.printf("Name must not be empty\n")
		return nil
	}

	description, err := getSimpleText(a.reader, "Enter description (optional)", a.out)
	if err != nil {
		return err
	}

	it, err := a.api.CreateItem(ctx, name, description)
	if err != nil {
		return a.report(err)
	}
	a.printf("Added item %d\n", it.ID)
	return nil
}

func (a *App) Edit(ctx context.Context) error {
	id, ok, err := a.promptID("Enter item id to edit")
	if err != nil || !ok {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter new name", a.out)
	if err != nil {
		return err
	}
	if name == "" {
		a.printf("Name must not be empty\n")
		return nil
	}

	description, err := getSimpleText(a.reader, "Enter new description (optional)", a.out)
	if err != nil {
		return err
	}

	if _, err := a.api.UpdateItem(ctx, id, name, description); err != nil {
		return a.report(err)
	}
	a.printf("Updated item %d\n", id)
	return nil
}

func (a *App) Delete(ctx context.Context) error {
	id, ok, err := a.promptID("Enter item id to delete")
	if err != nil || !ok {
		return err
	}

	if err := a.api.DeleteItem(ctx, id); err != nil {
		return a.report(err)
	}
	a.printf("Item deleted\n")
	return nil
}

func (a *App) promptID(prompt string) (int64, bool, error) {
	raw, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		a.printf("Invalid id: %q\n", raw)
		return 0, false, nil
	}
	return id, true, nil
}
