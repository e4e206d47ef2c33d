package notificacao

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// Revalidador avisa o front-end de que as páginas informadas ficaram desatualizadas.
type Revalidador interface {
	Revalidar(ctx context.Context, paths ...string)
}

// NovoRevalidador devolve um WebhookRevalidador, ou Nop quando url é vazia.
func NovoRevalidador(url, segredo string) Revalidador {
	if url == "" {
		return Nop{}
	}
	return &WebhookRevalidador{
		URL:     url,
		Segredo: segredo,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// WebhookRevalidador envia {"paths": [...]} via POST.
// Falhas só são logadas: a revalidação nunca desfaz a operação que a disparou.
type WebhookRevalidador struct {
	URL     string
	Segredo string
	Client  *http.Client
}

func (w *WebhookRevalidador) Revalidar(ctx context.Context, paths ...string) {
	if len(paths) == 0 {
		return
	}
	body, _ := json.Marshal(map[string][]string{"paths": paths})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		log.Printf("Erro ao montar webhook de revalidação: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if w.Segredo != "" {
		req.Header.Set("X-Revalidate-Secret", w.Segredo)
	}

	resp, err := w.Client.Do(req)
	if err != nil {
		log.Printf("Erro ao enviar webhook de revalidação: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		log.Printf("Webhook de revalidação respondeu %d", resp.StatusCode)
	}
}

type Nop struct{}

func (Nop) Revalidar(context.Context, ...string) {}
