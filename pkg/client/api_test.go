package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/terra-clan/levelup-web/internal/models"
)

func TestChallengeRecordNormalization(t *testing.T) {
	tests := []struct {
		name   string
		json   string
		wantID int64
		wantXP int
	}{
		{"snake id", `{"id_desafio":5}`, 5, 0},
		{"camel id", `{"idDesafio":9}`, 9, 0},
		{"zero snake falls through", `{"id_desafio":0,"idDesafio":3}`, 3, 0},
		{"null snake falls through", `{"id_desafio":null,"idDesafio":4}`, 4, 0},
		{"camel xp wins", `{"id_desafio":1,"xp_recompensa":100,"xpRecompensa":250}`, 1, 250},
		{"snake xp", `{"id_desafio":1,"xp_recompensa":100}`, 1, 100},
		{"zero camel xp is kept", `{"id_desafio":1,"xp_recompensa":100,"xpRecompensa":0}`, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec ChallengeRecord
			if err := json.Unmarshal([]byte(tt.json), &rec); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := rec.ChallengeID(); got != tt.wantID {
				t.Errorf("ChallengeID() = %d, want %d", got, tt.wantID)
			}
			if got := rec.XP(); got != tt.wantXP {
				t.Errorf("XP() = %d, want %d", got, tt.wantXP)
			}
		})
	}
}

func TestChallengeRecordNormalize(t *testing.T) {
	var rec ChallengeRecord
	raw := `{"idDesafio":7,"idEmpresa":2,"titulo":"Go","descricao":"d","categoria":"Backend","dificuldade":"medio","xpRecompensa":300}`
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatal(err)
	}

	got := rec.Normalize()
	want := models.Challenge{
		ID: 7, CompanyID: 2, Title: "Go", Description: "d", Category: "Backend",
		Difficulty: models.DifficultyMedium, XPReward: 300, Active: true,
	}
	if got != want {
		t.Errorf("Normalize() = %+v, want %+v", got, want)
	}
}

func TestLoginReturnsBareID(t *testing.T) {
	var got map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login/empresa" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		io.WriteString(w, "12")
	})

	res := c.Auth.LoginCompany(context.Background(), Credentials{Email: "a@b.c", Password: "pw"})
	if !res.OK() || res.Value() != 12 {
		t.Fatalf("expected id 12, got %+v", res)
	}
	if got["email_login_empresa"] != "a@b.c" || got["senha_login_empresa"] != "pw" {
		t.Errorf("unexpected login payload %v", got)
	}
}

func TestLoginAcceptsObject(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id_usuario":31}`)
	})

	res := c.Auth.LoginEmployee(context.Background(), Credentials{Email: "e", Password: "p"})
	if res.Value() != 31 {
		t.Errorf("expected id 31, got %+v", res)
	}
}

func TestLoginWrongRole(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, "Login incorreto")
	})

	res := c.Auth.LoginEmployee(context.Background(), Credentials{Email: "e", Password: "p"})
	if res.OK() || res.Status != 422 || res.Data != nil {
		t.Errorf("expected 422 failure, got %+v", res)
	}
}

func TestUpdateDefaultsActive(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	})

	res := c.Challenges.Update(context.Background(), UpdateChallengeRequest{ID: 3, CompanyID: 1, Title: "t"})
	if !res.OK() {
		t.Fatalf("unexpected error %q", res.Err)
	}
	if got["ativo"] != true {
		t.Errorf("expected ativo=true, got %v", got["ativo"])
	}

	inactive := false
	c.Challenges.Update(context.Background(), UpdateChallengeRequest{ID: 3, Active: &inactive})
	if got["ativo"] != false {
		t.Errorf("expected explicit ativo=false to be kept, got %v", got["ativo"])
	}
}

func TestDeleteStillReferenced(t *testing.T) {
	tests := []struct {
		status int
		body   string
		want   ErrorKind
	}{
		{500, `violates foreign key constraint "fk_desafio"`, KindStillReferenced},
		{500, "ORA-02292: integrity constraint violated", KindStillReferenced},
		{500, "NullPointerException", KindServer},
		{404, "constraint", KindClient},
	}

	for _, tt := range tests {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			io.WriteString(w, tt.body)
		})

		res := c.Challenges.Delete(context.Background(), 8)
		if res.Kind() != tt.want {
			t.Errorf("status %d body %q: expected %s, got %s", tt.status, tt.body, tt.want, res.Kind())
		}
	}
}

func TestEmployeeLists(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/desafiosUsuario/disponiveis/4":
			io.WriteString(w, `[{"id_desafio":1,"titulo":"A","xp_recompensa":10},{"id_desafio":2,"titulo":"B"}]`)
		case "/desafiosUsuario/desafiosAceitos/4":
			io.WriteString(w, `[{"idDesafio":2,"titulo":"B","xpRecompensa":20}]`)
		case "/desafiosUsuario/stats/4":
			io.WriteString(w, `{"id_status_usuario":1,"id_usuario":4,"desafios_concluidos":3,"nivel_atual":2,"xp_atual":50,"xp_total":450}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	ctx := context.Background()
	available := c.Employee.ListAvailable(ctx, 4)
	accepted := c.Employee.ListAccepted(ctx, 4)
	stats := c.Employee.Stats(ctx, 4)

	if len(available.Value()) != 2 {
		t.Fatalf("expected 2 available, got %+v", available)
	}
	if got := accepted.Value(); len(got) != 1 || got[0].ID != 2 || got[0].XPReward != 20 {
		t.Errorf("unexpected accepted %+v", got)
	}
	want := models.EmployeeStats{UserID: 4, Level: 2, XPCurrent: 50, XPTotal: 450, ChallengesCompleted: 3}
	if stats.Value() != want {
		t.Errorf("unexpected stats %+v", stats.Value())
	}
}

func TestListNotFoundIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	res := c.Challenges.ListByCompany(context.Background(), 9)
	if !res.NotFound() {
		t.Errorf("expected 404, got %d", res.Status)
	}
	if len(res.Value()) != 0 {
		t.Errorf("expected no challenges, got %v", res.Value())
	}
}

func TestListCompanies(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `["Acme","Globex"]`)
	})

	res := c.Registration.ListCompanies(context.Background())
	if got := res.Value(); len(got) != 2 || got[1] != "Globex" {
		t.Errorf("unexpected companies %v", got)
	}
}
