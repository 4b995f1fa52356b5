// Package workload replays a text workload file against the gateway.
//
// Each line is "SERVICE command args...":
//
//	USER create <id> <username> <email> <password>
//	USER get <id>
//	USER update <id> [username:<v>] [email:<v>] [password:<v>]
//	USER delete <id> <username> <email> <password>
//	PRODUCT create <id> <name> <price> <quantity>
//	PRODUCT info <id>
//	PRODUCT update <id> [name:<v>] [description:<v>] [price:<v>] [quantity:<v>]
//	PRODUCT delete <id> <name> <price> <quantity>
//	ORDER place <product_id> <user_id> <quantity>
//
// Blank lines and lines starting with '#' or '[' are skipped.
package workload

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrSkip = errors.New("nothing to send")

type Request struct {
	Method string
	Path   string
	Body   []byte
}

// ParseLine turns one workload line into a request. Lines with nothing to
// send return ErrSkip.
func ParseLine(line string) (Request, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "[") {
		return Request{}, ErrSkip
	}
	tok := strings.Fields(line)
	if len(tok) < 3 {
		return Request{}, fmt.Errorf("workload: short line %q", line)
	}
	service, cmd := strings.ToUpper(tok[0]), strings.ToLower(tok[1])

	switch service {
	case "USER":
		return parseUser(cmd, tok[2:])
	case "PRODUCT":
		return parseProduct(cmd, tok[2:])
	case "ORDER":
		if cmd != "place" {
			return Request{}, fmt.Errorf("workload: unknown order command %q", cmd)
		}
		return parseOrder(tok[2:])
	default:
		return Request{}, fmt.Errorf("workload: unknown service %q", tok[0])
	}
}

func parseUser(cmd string, args []string) (Request, error) {
	id, err := intArg("id", args[0])
	if err != nil {
		return Request{}, err
	}
	switch cmd {
	case "get":
		return Request{Method: http.MethodGet, Path: "/user/" + strconv.Itoa(id)}, nil
	case "create", "delete":
		if len(args) < 4 {
			return Request{}, fmt.Errorf("workload: user %s needs id username email password", cmd)
		}
		return post("/user", map[string]any{
			"command": cmd, "id": id, "username": args[1], "email": args[2], "password": args[3],
		})
	case "update":
		body, err := updateBody(id, args[1:], nil)
		if err != nil {
			return Request{}, err
		}
		return post("/user", body)
	default:
		return Request{}, fmt.Errorf("workload: unknown user command %q", cmd)
	}
}

func parseProduct(cmd string, args []string) (Request, error) {
	id, err := intArg("id", args[0])
	if err != nil {
		return Request{}, err
	}
	switch cmd {
	case "info":
		return Request{Method: http.MethodGet, Path: "/product/" + strconv.Itoa(id)}, nil
	case "create", "delete":
		if len(args) < 4 {
			return Request{}, fmt.Errorf("workload: product %s needs id name price quantity", cmd)
		}
		price, err := priceArg(args[2])
		if err != nil {
			return Request{}, err
		}
		qty, err := intArg("quantity", args[3])
		if err != nil {
			return Request{}, err
		}
		body := map[string]any{"command": cmd, "id": id, "name": args[1], "price": price, "quantity": qty}
		if cmd == "create" {
			body["description"] = args[1]
		}
		return post("/product", body)
	case "update":
		body, err := updateBody(id, args[1:], map[string]func(string) (any, error){
			"price":    func(s string) (any, error) { return priceArg(s) },
			"quantity": func(s string) (any, error) { return intArg("quantity", s) },
		})
		if err != nil {
			return Request{}, err
		}
		return post("/product", body)
	default:
		return Request{}, fmt.Errorf("workload: unknown product command %q", cmd)
	}
}

func parseOrder(args []string) (Request, error) {
	if len(args) < 3 {
		return Request{}, fmt.Errorf("workload: order place needs product_id user_id quantity")
	}
	body := map[string]any{"command": "place order"}
	for i, name := range []string{"product_id", "user_id", "quantity"} {
		n, err := intArg(name, args[i])
		if err != nil {
			return Request{}, err
		}
		body[name] = n
	}
	return post("/order", body)
}

// updateBody builds an update from key:value pairs. Keys listed in numeric
// are converted; all others are sent as strings. Malformed pairs are ignored.
func updateBody(id int, pairs []string, numeric map[string]func(string) (any, error)) (map[string]any, error) {
	body := map[string]any{"command": "update", "id": id}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, ":")
		if !ok || k == "" {
			continue
		}
		if conv, isNum := numeric[k]; isNum {
			n, err := conv(v)
			if err != nil {
				return nil, err
			}
			body[k] = n
			continue
		}
		body[k] = v
	}
	return body, nil
}

func post(path string, body map[string]any) (Request, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return Request{}, err
	}
	return Request{Method: http.MethodPost, Path: path, Body: b}, nil
}

func intArg(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("workload: %s %q is not an integer", name, s)
	}
	return n, nil
}

// priceArg validates a decimal and keeps its literal form on the wire.
func priceArg(s string) (json.Number, error) {
	if _, err := decimal.NewFromString(s); err != nil {
		return "", fmt.Errorf("workload: price %q is not a number", s)
	}
	return json.Number(s), nil
}
