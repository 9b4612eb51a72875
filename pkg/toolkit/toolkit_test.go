package toolkit

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/shamank/smartwallet-console/pkg/model"
)

func echo(name string) Action {
	return NewAction(name, "echo "+name, nil, func(_ context.Context, args map[string]any) (any, error) {
		return args, nil
	})
}

func TestRegistry_LookupIsExact(t *testing.T) {
	r, err := NewRegistry([]Action{echo("get_balance"), echo("smart_swap")})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	if _, ok := r.Lookup("get_balance"); !ok {
		t.Fatal("expected get_balance")
	}
	for _, name := range []string{"GET_BALANCE", "get_balance ", "get", ""} {
		if _, ok := r.Lookup(name); ok {
			t.Fatalf("lookup of %q should fail", name)
		}
	}
	if got := r.Names(); !reflect.DeepEqual(got, []string{"get_balance", "smart_swap"}) {
		t.Fatalf("Names() = %v", got)
	}
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	if _, err := NewRegistry([]Action{echo("a"), echo("a")}); err == nil {
		t.Fatal("expected duplicate error")
	}
}

func TestRegistry_DescribeKeepsOrder(t *testing.T) {
	params := []model.ParameterInfo{{Name: "amount", Type: "string", Required: true}}
	r, _ := NewRegistry([]Action{
		echo("z"),
		NewAction("a", "first letter", params, nil),
		nil,
	})
	got := r.Describe()
	if len(got) != 2 || got[0].Name != "z" || got[1].Name != "a" {
		t.Fatalf("unexpected order %+v", got)
	}
	if got[1].Description != "first letter" || !reflect.DeepEqual(got[1].Parameters, params) {
		t.Fatalf("unexpected description %+v", got[1])
	}
}

func TestStaticToolkit(t *testing.T) {
	closed := 0
	tk := Static(func() { closed++ }, echo("x"))
	if len(tk.Tools()) != 1 {
		t.Fatal("expected one tool")
	}
	out, err := tk.Tools()[0].Invoke(context.Background(), map[string]any{"k": "v"})
	if err != nil || out.(map[string]any)["k"] != "v" {
		t.Fatalf("unexpected invoke result %v, %v", out, err)
	}
	tk.Close()
	if closed != 1 {
		t.Fatal("onClose not called")
	}
	Static(nil).Close()
}

func TestToolError(t *testing.T) {
	cause := errors.New("execution reverted")
	err := Wrap(cause, "transfer failed")
	if err.Reason() != "transfer failed: execution reverted" {
		t.Fatalf("Reason() = %q", err.Reason())
	}
	if err.Error() != "transfer failed: execution reverted" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause not unwrapped")
	}
	if Failf("unknown token %q", "X").Error() != `unknown token "X"` {
		t.Fatal("unexpected Failf message")
	}
}
