package hosting

import (
	"sort"
	"strings"

	"code-auditor/internal/scanner"
)

// ConfigFile is one file a hosting platform expects at the repo root.
type ConfigFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Provider describes a deployment target and the scaffolding it needs.
type Provider struct {
	Key         string            `json:"key"`
	Name        string            `json:"name"`
	ConfigFiles []ConfigFile      `json:"config_files"`
	EnvVars     map[string]string `json:"env_vars"`
	Steps       []string          `json:"deployment_steps"`
	Suggestions []string          `json:"suggestions"`
}

var catalog = map[string]Provider{
	"vercel": {
		Key:  "vercel",
		Name: "Vercel",
		ConfigFiles: []ConfigFile{
			{
				Path: "vercel.json",
				Content: `{
  "version": 2,
  "builds": [
    {
      "src": "package.json",
      "use": "@vercel/static-build"
    }
  ]
}
`,
			},
		},
		EnvVars: map[string]string{
			"NODE_ENV": "production",
		},
		Steps: []string{
			"Install the Vercel CLI: npm i -g vercel",
			"Run vercel from the repository root",
			"Set environment variables in the Vercel dashboard",
		},
		Suggestions: []string{
			"Best for frontend frameworks and serverless functions",
			"Automatic preview deployments per pull request",
		},
	},
	"heroku": {
		Key:  "heroku",
		Name: "Heroku",
		ConfigFiles: []ConfigFile{
			{
				Path:    "Procfile",
				Content: "web: gunicorn app:app\n",
			},
			{
				Path:    "runtime.txt",
				Content: "python-3.11.6\n",
			},
		},
		EnvVars: map[string]string{
			"PORT": "provided by platform",
		},
		Steps: []string{
			"Install the Heroku CLI and run heroku login",
			"Create the app: heroku create <app-name>",
			"Push the branch: git push heroku main",
		},
		Suggestions: []string{
			"Good fit for Python and Node backends",
			"Add a Procfile so the dyno knows what to run",
		},
	},
	"netlify": {
		Key:  "netlify",
		Name: "Netlify",
		ConfigFiles: []ConfigFile{
			{
				Path: "netlify.toml",
				Content: `[build]
  command = "npm run build"
  publish = "dist"

[build.environment]
  NODE_VERSION = "20"
`,
			},
		},
		EnvVars: map[string]string{
			"NODE_ENV": "production",
		},
		Steps: []string{
			"Connect the repository in the Netlify dashboard",
			"Set the build command and publish directory",
			"Deploys run automatically on push",
		},
		Suggestions: []string{
			"Best for static sites and JAMstack apps",
			"Supports redirects and edge functions via netlify.toml",
		},
	},
	"render": {
		Key:  "render",
		Name: "Render",
		ConfigFiles: []ConfigFile{
			{
				Path: "render.yaml",
				Content: `services:
  - type: web
    name: app
    env: python
    buildCommand: pip install -r requirements.txt
    startCommand: gunicorn app:app
`,
			},
		},
		EnvVars: map[string]string{
			"PYTHON_VERSION": "3.11.6",
		},
		Steps: []string{
			"Create a new Web Service in the Render dashboard",
			"Point it at the repository and branch",
			"render.yaml drives build and start commands",
		},
		Suggestions: []string{
			"Free tier available for web services",
			"Blueprint (render.yaml) keeps infra in the repo",
		},
	},
	"railway": {
		Key:  "railway",
		Name: "Railway",
		ConfigFiles: []ConfigFile{
			{
				Path: "railway.json",
				Content: `{
  "$schema": "https://railway.app/railway.schema.json",
  "build": {
    "builder": "NIXPACKS"
  },
  "deploy": {
    "restartPolicyType": "ON_FAILURE"
  }
}
`,
			},
		},
		EnvVars: map[string]string{
			"PORT": "provided by platform",
		},
		Steps: []string{
			"Install the Railway CLI: npm i -g @railway/cli",
			"Run railway init then railway up",
		},
		Suggestions: []string{
			"Nixpacks detects the stack automatically",
			"Built-in Postgres and Redis add-ons",
		},
	},
}

// Get returns the provider for a key, case-insensitively.
func Get(key string) (Provider, bool) {
	p, ok := catalog[strings.ToLower(strings.TrimSpace(key))]
	return p, ok
}

// All returns every known provider sorted by key.
func All() []Provider {
	out := make([]Provider, 0, len(catalog))
	for _, p := range catalog {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Suggest picks provider keys that fit the scanned repo, most specific first.
func Suggest(files []scanner.File) []string {
	var hasPython, hasNode, hasStatic bool
	for _, f := range files {
		switch {
		case strings.HasSuffix(f.Path, ".py"), strings.HasSuffix(f.Path, "requirements.txt"):
			hasPython = true
		case strings.HasSuffix(f.Path, "package.json"), strings.HasSuffix(f.Path, ".ts"), strings.HasSuffix(f.Path, ".jsx"), strings.HasSuffix(f.Path, ".tsx"):
			hasNode = true
		case strings.HasSuffix(f.Path, ".html"):
			hasStatic = true
		case strings.HasSuffix(f.Path, ".js"):
			hasNode = true
		}
	}

	var keys []string
	if hasNode {
		keys = append(keys, "vercel", "netlify", "railway")
	}
	if hasPython {
		keys = append(keys, "render", "heroku", "railway")
	}
	if hasStatic && !hasNode && !hasPython {
		keys = append(keys, "netlify", "vercel")
	}
	if len(keys) == 0 {
		keys = []string{"railway", "render"}
	}

	seen := map[string]bool{}
	out := keys[:0]
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
