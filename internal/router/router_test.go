package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/adapters/storage/memory"
	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/domain/checkout"
	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/platform/sim"
	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/router"
)

var fixedNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, opts router.Options) *httptest.Server {
	t.Helper()

	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	if opts.Sleeper == nil {
		opts.Sleeper = sim.NopSleeper()
	}
	if opts.Rand == nil {
		opts.Rand = sim.NewRand(1)
	}
	if opts.IDs == nil {
		opts.IDs = sim.NewSequenceGenerator("id")
	}

	ts := httptest.NewServer(router.New(opts))
	t.Cleanup(ts.Close)
	return ts
}

type testUser struct {
	id    string
	name  string
	email string
}

var (
	maria  = testUser{id: "user-1", name: "María", email: "maria@waggi.pet"}
	carlos = testUser{id: "user-2", name: "Carlos", email: "carlos@waggi.pet"}
)

func doReq(t *testing.T, baseURL, method, path string, u testUser, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if u.id != "" {
		req.Header.Set("X-Debug-User-ID", u.id)
		req.Header.Set("X-Debug-User-Name", u.name)
		req.Header.Set("X-Debug-User-Email", u.email)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, b
}

func TestHTTP_PlanPurchase_EndToEnd(t *testing.T) {
	ts := newTestServer(t, router.Options{
		Provider: checkout.FixedProvider{Outcome: checkout.OutcomeSuccess},
	})

	// 1) Catálogo público, sin auth.
	{
		st, body := doReq(t, ts.URL, "GET", "/plans", testUser{}, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list plans, got %d body=%s", st, string(body))
		}
		var plansResp []struct {
			ID      string `json:"id"`
			Popular bool   `json:"popular"`
			Free    bool   `json:"free"`
		}
		if err := json.Unmarshal(body, &plansResp); err != nil {
			t.Fatalf("unmarshal plans: %v", err)
		}
		if len(plansResp) != 3 {
			t.Fatalf("expected 3 plans, got %d", len(plansResp))
		}
		if !plansResp[0].Free || plansResp[0].ID != "huellito" {
			t.Fatalf("first plan must be the free one, got %#v", plansResp[0])
		}
	}

	// 2) Plan inexistente => 404 manejado.
	{
		st, _ := doReq(t, ts.URL, "GET", "/plans/planX", testUser{}, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for unknown plan, got %d", st)
		}
	}

	// 3) Resumen del pedido anual con descuento.
	{
		st, body := doReq(t, ts.URL, "GET", "/checkout/quote?plan=bigotes&cycle=annual", testUser{}, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 quote, got %d body=%s", st, string(body))
		}
		var q struct {
			Subtotal       int64 `json:"subtotal"`
			AnnualDiscount int64 `json:"annual_discount"`
			Tax            int64 `json:"tax"`
			Total          int64 `json:"total"`
		}
		if err := json.Unmarshal(body, &q); err != nil {
			t.Fatalf("unmarshal quote: %v", err)
		}
		if q.Subtotal != 287000 || q.AnnualDiscount != 57400 {
			t.Fatalf("unexpected quote: %+v", q)
		}
		if q.Total != q.Subtotal+q.Tax {
			t.Fatalf("total mismatch: %+v", q)
		}
	}

	// 4) Compra exitosa de colita => redirect /success y plan activado.
	{
		st, body := doReq(t, ts.URL, "POST", "/checkout?plan=colita", maria, map[string]any{
			"billing_cycle": "monthly",
			"customer":      map[string]any{"name": "María", "email": "maria@waggi.pet", "phone": "3001234567"},
			"pet":           map[string]any{"pet_name": "Lucos"},
			"payment":       map[string]any{"card_number": "4111111111111111", "card_name": "MARIA", "expiry": "12/27", "cvv": "123"},
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 checkout, got %d body=%s", st, string(body))
		}
		var res struct {
			Outcome    string `json:"outcome"`
			RedirectTo string `json:"redirect_to"`
		}
		if err := json.Unmarshal(body, &res); err != nil {
			t.Fatalf("unmarshal checkout: %v", err)
		}
		if res.Outcome != "success" || res.RedirectTo != "/success" {
			t.Fatalf("unexpected result: %+v", res)
		}
	}

	// 5) La cuota del chat refleja el plan comprado.
	{
		st, body := doReq(t, ts.URL, "GET", "/chat/limits", maria, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 limits, got %d body=%s", st, string(body))
		}
		var limits struct {
			DailyQuestions int    `json:"daily_questions"`
			PlanName       string `json:"plan_name"`
		}
		if err := json.Unmarshal(body, &limits); err != nil {
			t.Fatalf("unmarshal limits: %v", err)
		}
		if limits.DailyQuestions != 25 || limits.PlanName != "Plan Colita Feliz" {
			t.Fatalf("expected colita entitlements, got %+v", limits)
		}
	}

	// 6) El intento quedó registrado.
	{
		st, body := doReq(t, ts.URL, "GET", "/checkout/attempts", maria, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 attempts, got %d body=%s", st, string(body))
		}
		var attempts []struct {
			PlanID  string `json:"plan_id"`
			Outcome string `json:"outcome"`
		}
		if err := json.Unmarshal(body, &attempts); err != nil {
			t.Fatalf("unmarshal attempts: %v", err)
		}
		if len(attempts) != 1 || attempts[0].PlanID != "colita" || attempts[0].Outcome != "success" {
			t.Fatalf("unexpected attempts: %#v", attempts)
		}
	}
}

func TestHTTP_Checkout_FailureRedirect(t *testing.T) {
	ts := newTestServer(t, router.Options{
		Provider: checkout.FixedProvider{Outcome: checkout.OutcomeCancelled},
	})

	st, body := doReq(t, ts.URL, "POST", "/checkout?plan=bigotes", maria, map[string]any{
		"billing_cycle": "monthly",
		"customer":      map[string]any{"name": "María", "email": "maria@waggi.pet", "phone": "3001234567"},
		"pet":           map[string]any{"pet_name": "Lucos"},
		"payment":       map[string]any{"card_number": "4111111111111111", "card_name": "MARIA", "expiry": "12/27", "cvv": "123"},
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 (failure is a business outcome), got %d body=%s", st, string(body))
	}

	var res struct {
		Outcome    string `json:"outcome"`
		RedirectTo string `json:"redirect_to"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.Outcome != "cancelled" || res.RedirectTo != "/error?plan=bigotes&type=cancelled" {
		t.Fatalf("unexpected result: %+v", res)
	}

	// Compra fallida => sigue en el plan gratis.
	stLimits, bodyLimits := doReq(t, ts.URL, "GET", "/chat/limits", maria, nil)
	if stLimits != http.StatusOK {
		t.Fatalf("expected 200 limits, got %d", stLimits)
	}
	var limits struct {
		PlanName string `json:"plan_name"`
	}
	if err := json.Unmarshal(bodyLimits, &limits); err != nil {
		t.Fatalf("unmarshal limits: %v", err)
	}
	if limits.PlanName != "Plan Huellito" {
		t.Fatalf("failed purchase must not change the plan, got %+v", limits)
	}
}

func TestHTTP_Checkout_MissingFields(t *testing.T) {
	ts := newTestServer(t, router.Options{
		Provider: checkout.FixedProvider{Outcome: checkout.OutcomeSuccess},
	})

	// Plan pago sin tarjeta => 400.
	st, _ := doReq(t, ts.URL, "POST", "/checkout?plan=bigotes", maria, map[string]any{
		"billing_cycle": "monthly",
		"customer":      map[string]any{"name": "María", "email": "maria@waggi.pet", "phone": "3001234567"},
		"pet":           map[string]any{"pet_name": "Lucos"},
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing card, got %d", st)
	}
}

func TestHTTP_Chat_QuotaFlow(t *testing.T) {
	ts := newTestServer(t, router.Options{})

	// Primera visita: solo el saludo.
	{
		st, body := doReq(t, ts.URL, "GET", "/chat/messages", maria, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 messages, got %d body=%s", st, string(body))
		}
		var msgs []struct {
			Role string `json:"role"`
		}
		if err := json.Unmarshal(body, &msgs); err != nil {
			t.Fatalf("unmarshal messages: %v", err)
		}
		if len(msgs) != 1 || msgs[0].Role != "assistant" {
			t.Fatalf("expected greeting only, got %#v", msgs)
		}
	}

	// Consumir toda la cuota del plan gratis (10).
	for i := 0; i < 10; i++ {
		st, body := doReq(t, ts.URL, "POST", "/chat/messages", maria, map[string]any{
			"content": "¿Qué come un golden?",
		})
		if st != http.StatusOK {
			t.Fatalf("send #%d: expected 200, got %d body=%s", i, st, string(body))
		}
	}

	// La 11 => 429 con los límites para ofrecer upgrade.
	{
		st, body := doReq(t, ts.URL, "POST", "/chat/messages", maria, map[string]any{
			"content": "¿una más?",
		})
		if st != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d body=%s", st, string(body))
		}
		var res struct {
			Limits struct {
				Remaining int `json:"remaining"`
			} `json:"limits"`
		}
		if err := json.Unmarshal(body, &res); err != nil {
			t.Fatalf("unmarshal 429: %v", err)
		}
		if res.Limits.Remaining != 0 {
			t.Fatalf("expected 0 remaining, got %d", res.Limits.Remaining)
		}
	}

	// Sin auth => 401.
	{
		st, _ := doReq(t, ts.URL, "GET", "/chat/messages", testUser{}, nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without user, got %d", st)
		}
	}
}

func TestHTTP_Packs_EndToEnd(t *testing.T) {
	ts := newTestServer(t, router.Options{})

	// 1) María crea la manada familiar.
	var packID string
	{
		st, body := doReq(t, ts.URL, "POST", "/packs", maria, map[string]any{
			"name":       "Familia López",
			"type":       "family",
			"pet_type":   "any",
			"birth_date": "1990-03-10", // cumple hoy con el reloj fijo
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create pack, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID      string `json:"id"`
			IsOwner bool   `json:"is_owner"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ID == "" || !resp.IsOwner {
			t.Fatalf("unexpected pack response: %s", string(body))
		}
		packID = resp.ID
	}

	// 2) Invita a Carlos; él la ve y la acepta.
	var invID string
	{
		st, body := doReq(t, ts.URL, "POST", "/packs/"+packID+"/invitations", maria, map[string]any{
			"email": "carlos@waggi.pet",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 invite, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &resp)
		invID = resp.ID

		st, body = doReq(t, ts.URL, "GET", "/me/invitations", carlos, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 my invitations, got %d body=%s", st, string(body))
		}

		st, body = doReq(t, ts.URL, "POST", "/invitations/"+invID+"/accept", carlos, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 accept, got %d body=%s", st, string(body))
		}
	}

	// 3) Carlos, ya miembro, agrega un evento futuro.
	var eventID string
	{
		st, body := doReq(t, ts.URL, "POST", "/packs/"+packID+"/events", carlos, map[string]any{
			"title":    "Paseo en el parque",
			"date":     "2026-03-12",
			"time":     "10:00",
			"location": "Parque Simón Bolívar",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 add event, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &resp)
		eventID = resp.ID
	}

	// 4) La agenda trae el evento + el cumpleaños derivado de María (hoy).
	{
		st, body := doReq(t, ts.URL, "GET", "/packs/"+packID+"/agenda", carlos, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 agenda, got %d body=%s", st, string(body))
		}
		var agenda []struct {
			Kind      string `json:"kind"`
			DueLabel  string `json:"due_label"`
			CanDelete bool   `json:"can_delete"`
		}
		if err := json.Unmarshal(body, &agenda); err != nil {
			t.Fatalf("unmarshal agenda: %v", err)
		}
		if len(agenda) != 2 {
			t.Fatalf("expected event + birthday, got %d entries body=%s", len(agenda), string(body))
		}
		// Cumpleaños a las 00:00 de hoy va primero.
		if agenda[0].Kind != "birthday" || agenda[0].DueLabel != "Hoy" || agenda[0].CanDelete {
			t.Fatalf("unexpected first agenda entry: %#v", agenda[0])
		}
	}

	// 5) Regalo virtual de cumpleaños.
	{
		st, body := doReq(t, ts.URL, "GET", "/gifts", testUser{}, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 gift catalog, got %d", st)
		}
		var gifts []struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(body, &gifts); err != nil {
			t.Fatalf("unmarshal gifts: %v", err)
		}
		if len(gifts) != 5 {
			t.Fatalf("expected 5 gifts, got %d", len(gifts))
		}

		// El destinatario es el member de María (primer miembro).
		stPack, bodyPack := doReq(t, ts.URL, "GET", "/packs/"+packID, carlos, nil)
		if stPack != http.StatusOK {
			t.Fatalf("expected 200 get pack, got %d", stPack)
		}
		var pack struct {
			Members []struct {
				ID string `json:"id"`
			} `json:"members"`
		}
		_ = json.Unmarshal(bodyPack, &pack)

		st, body = doReq(t, ts.URL, "POST", "/packs/"+packID+"/gifts", carlos, map[string]any{
			"gift_id":        "heart",
			"recipient_kind": "member",
			"recipient_id":   pack.Members[0].ID,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 send gift, got %d body=%s", st, string(body))
		}
		var receipt struct {
			RecipientName string `json:"recipient_name"`
		}
		_ = json.Unmarshal(body, &receipt)
		if receipt.RecipientName != "María" {
			t.Fatalf("expected recipient María, got %s", receipt.RecipientName)
		}
	}

	// 6) Borrar el evento preserva la manada; el cumpleaños no se borra.
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/packs/"+packID+"/events/"+eventID, maria, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete event, got %d", st)
		}

		st, _ = doReq(t, ts.URL, "DELETE", "/packs/"+packID+"/events/birthday-member-id-2", maria, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 deleting derived birthday, got %d", st)
		}
	}

	// 7) Solo la owner borra la manada.
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/packs/"+packID, carlos, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 non-owner delete, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "DELETE", "/packs/"+packID, maria, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 owner delete, got %d", st)
		}
	}
}

func TestHTTP_SeedDemo_LoadsFixtures(t *testing.T) {
	ts := newTestServer(t, router.Options{SeedDemo: true})

	demo := testUser{id: memory.DemoUserID, name: memory.DemoUserName, email: memory.DemoUserEmail}

	// Mascotas demo.
	{
		st, body := doReq(t, ts.URL, "GET", "/pets", demo, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 pets, got %d body=%s", st, string(body))
		}
		var petsResp []struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(body, &petsResp); err != nil {
			t.Fatalf("unmarshal pets: %v", err)
		}
		if len(petsResp) != 3 {
			t.Fatalf("expected 3 demo pets, got %d", len(petsResp))
		}
	}

	// La sesión demo arranca con cuota parcialmente usada.
	{
		st, body := doReq(t, ts.URL, "GET", "/chat/limits", demo, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 limits, got %d", st)
		}
		var limits struct {
			QuestionsUsed int `json:"questions_used"`
			Remaining     int `json:"remaining"`
		}
		if err := json.Unmarshal(body, &limits); err != nil {
			t.Fatalf("unmarshal limits: %v", err)
		}
		if limits.QuestionsUsed != 3 || limits.Remaining != 7 {
			t.Fatalf("expected 3 used / 7 remaining, got %+v", limits)
		}
	}

	// La manada familiar trae cumpleaños "Hoy" y "Mañana".
	{
		st, body := doReq(t, ts.URL, "GET", "/packs/pack-familia-lopez/agenda", demo, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 agenda, got %d body=%s", st, string(body))
		}
		var agenda []struct {
			Kind     string `json:"kind"`
			DueLabel string `json:"due_label"`
		}
		if err := json.Unmarshal(body, &agenda); err != nil {
			t.Fatalf("unmarshal agenda: %v", err)
		}

		labels := map[string]int{}
		for _, e := range agenda {
			if e.Kind == "birthday" && e.DueLabel != "" {
				labels[e.DueLabel]++
			}
		}
		if labels["Hoy"] != 2 || labels["Mañana"] != 1 {
			t.Fatalf("expected 2 birthdays today and 1 tomorrow, got %v body=%s", labels, string(body))
		}
	}
}

func TestHTTP_Health(t *testing.T) {
	ts := newTestServer(t, router.Options{})

	st, body := doReq(t, ts.URL, "GET", "/health", testUser{}, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 health, got %d body=%s", st, string(body))
	}
}
